package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// Request модель запроса на генерацию слотов.
// Незаданные поля заполняются значениями по умолчанию (10:00-18:00, 60 минут, 1500).
type Request struct {
	ResourceID      string
	Date            time.Time
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	DurationMinutes int
	Price           *int64
}

// Response модель ответа
type Response struct {
	ResourceID string
	Date       time.Time
	Created    []*domain.TimeSlot // Новые слоты
	Skipped    int                // Слоты, которые уже были в каталоге
}
