package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
	"github.com/m04kA/PicklePlay-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PicklePlay-BookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"slot_date",
	"hour",
	"start_time",
	"end_time",
	"price",
	"status",
	"booking_id",
	"created_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает все слоты одного дня одним INSERT.
// Один multi-values INSERT атомарен сам по себе: день либо получает
// полный набор слотов, либо ни одного.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("id", "slot_date", "hour", "start_time", "end_time", "price", "status", "booking_id")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.ID,
			domain.FormatDate(s.Date),
			s.Hour,
			s.StartTime,
			s.EndTime,
			s.Price,
			s.Status,
			s.BookingID,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CountByDate возвращает количество слотов на указанную дату.
// Используется генератором как проверка существования дня.
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"slot_date": domain.FormatDate(date)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByDate получает все слоты на дату, отсортированные по часу
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"slot_date": domain.FormatDate(date)}).
		OrderBy("hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByIDs получает слоты по списку идентификаторов, отсортированные по часу.
// Внутри транзакции блокирует строки (FOR UPDATE) для предотвращения гонки
// между чтением снапшота и условным обновлением статуса.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("hour ASC")

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

	return r.scanSlots(rows)
}

// GetByID получает слот по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetMaxDate возвращает самую позднюю дату, на которую есть слоты.
// Возвращает ErrNoSlots, если хранилище пустое.
func (r *Repository) GetMaxDate(ctx context.Context) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_date").
		From("slots").
		OrderBy("slot_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: GetMaxDate - build select query: %v", ErrBuildQuery, err)
	}

	var dateStr string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&dateStr)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNoSlots
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: GetMaxDate - scan date: %v", ErrScanRow, err)
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: GetMaxDate - parse date %q: %v", ErrScanRow, dateStr, err)
	}

	return date, nil
}

// AvailableDates возвращает отсортированный список дат начиная с from,
// на которых есть хотя бы один слот со статусом available
func (r *Repository) AvailableDates(ctx context.Context, from time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT slot_date").
		From("slots").
		Where(squirrel.GtOrEq{"slot_date": domain.FormatDate(from)}).
		Where(squirrel.Eq{"status": domain.SlotAvailable}).
		OrderBy("slot_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AvailableDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: AvailableDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, fmt.Errorf("%w: AvailableDates - scan date: %v", ErrScanRow, err)
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: AvailableDates - parse date %q: %v", ErrScanRow, dateStr, err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: AvailableDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// MarkBooked условно переводит слоты в booked и проставляет booking_id.
// Обновляются только слоты со статусом available (compare-and-swap);
// возвращает число реально обновленных строк. Вызывающий обязан сверить
// его с длиной списка и откатить транзакцию при расхождении.
func (r *Repository) MarkBooked(ctx context.Context, slotIDs []string, bookingID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotBooked).
		Set("booking_id", bookingID).
		Where(squirrel.Eq{"id": slotIDs}).
		Where(squirrel.Eq{"status": domain.SlotAvailable}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// ReleaseByBooking возвращает слоты бронирования в available и обнуляет
// booking_id. Используется при удалении бронирования администратором.
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("booking_id", nil).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// SetStatus условно меняет статус слота (available <-> unavailable).
// Забронированный слот изменить нельзя: условие status <> booked делает
// обновление безопасным при гонке с параллельным бронированием.
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.SlotBooked}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	// Ноль строк: либо слота нет, либо он забронирован
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrSlotBooked
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var dateStr string
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&dateStr,
		&slot.Hour,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Price,
		&slot.Status,
		&slot.BookingID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid slot_date %q: %v", dateStr, err)
	}

	slot.Date = date
	slot.CreatedAt = createdAt.Time

	return &slot, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
