package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
)

const tableName = "time_slots"

var slotColumns = []string{
	"id",
	"resource_id",
	"slot_date",
	"start_time",
	"end_time",
	"is_booked",
	"price",
}

// Repository каталог слотов в PostgreSQL
type Repository struct {
	db        DBExecutor
	txManager TxManager
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor, txManager TxManager) *Repository {
	return &Repository{db: db, txManager: txManager}
}

// ListAvailable возвращает свободные слоты площадки на дату по возрастанию времени начала
func (r *Repository) ListAvailable(ctx context.Context, resourceID string, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"slot_date":   domain.DateOnly(date),
			"is_booked":   false,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByIDs получает слоты по ID в порядке запроса.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByIDs(ctx context.Context, slotIDs []string) ([]*domain.TimeSlot, error) {
	if len(slotIDs) == 0 {
		return []*domain.TimeSlot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": slotIDs}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.TimeSlot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}

	result := make([]*domain.TimeSlot, 0, len(slotIDs))
	for _, id := range slotIDs {
		s, ok := byID[id]
		if !ok {
			return nil, ErrSlotNotFound
		}
		result = append(result, s)
	}

	return result, nil
}

// MarkBooked атомарно помечает слоты занятыми: блокирует строки, проверяет, затем обновляет.
// Конфликт или отсутствующий слот не меняют ни одной строки.
// Если в контексте нет транзакции, открывает собственную SERIALIZABLE транзакцию.
func (r *Repository) MarkBooked(ctx context.Context, slotIDs []string) error {
	slotIDs = uniqueIDs(slotIDs)
	if len(slotIDs) == 0 {
		return nil
	}

	if !dbmetrics.IsInTransaction(ctx) {
		err := r.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return r.markBooked(txCtx, slotIDs)
		})
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			return domain.NewSlotConflictError("")
		}
		return err
	}

	return r.markBooked(ctx, slotIDs)
}

func (r *Repository) markBooked(ctx context.Context, slotIDs []string) error {
	locked, err := r.GetByIDs(ctx, slotIDs)
	if err != nil {
		return err
	}

	for _, s := range locked {
		if s.IsBooked {
			return domain.NewSlotConflictError(s.ID)
		}
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_booked", true).
		Where(squirrel.Eq{"id": slotIDs, "is_booked": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	// строки заблокированы, расхождение означает, что слот заняли параллельно
	if rowsAffected != int64(len(locked)) {
		return domain.NewSlotConflictError("")
	}

	return nil
}

// CreateBatch вставляет слоты, пропуская существующие по (resource_id, slot_date, start_time, end_time).
// Возвращает реально добавленные слоты.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if len(slots) == 0 {
		return []*domain.TimeSlot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableName).Columns(slotColumns...)
	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.ID,
			s.ResourceID,
			domain.DateOnly(s.Date),
			s.StartTime,
			s.EndTime,
			s.IsBooked,
			s.Price,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT DO NOTHING RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var s domain.TimeSlot
		var date time.Time

		err := rows.Scan(
			&s.ID,
			&s.ResourceID,
			&date,
			&s.StartTime,
			&s.EndTime,
			&s.IsBooked,
			&s.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.Date = domain.DateOnly(date)
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// uniqueIDs убирает повторы, сохраняя порядок первого вхождения
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
