package slot

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// TxManager открывает транзакцию, если MarkBooked вызван вне её
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
