package booking

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

var bookingColumns = []string{
	"id",
	"customer_id",
	"customer_name",
	"customer_email",
	"booking_date",
	"total_amount",
	"payment_method",
	"payment_status",
	"booking_status",
	"payment_order_id",
	"payment_id",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями.
// Снапшоты слотов хранятся в отдельной таблице booking_slots и
// загружаются вместе с бронированием.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со снапшотами слотов.
// Выполняется двумя INSERT, поэтому должен вызываться внутри транзакции
// (create_booking usecase оборачивает его в DoSerializable вместе с
// условным обновлением статусов слотов).
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"customer_name",
			"customer_email",
			"booking_date",
			"total_amount",
			"payment_method",
			"payment_status",
			"booking_status",
			"payment_order_id",
			"expires_at",
		).
		Values(
			b.ID,
			b.CustomerID,
			b.CustomerName,
			b.CustomerEmail,
			domain.FormatDate(b.Date),
			b.TotalAmount,
			b.PaymentMethod,
			b.PaymentStatus,
			b.BookingStatus,
			b.PaymentOrderID,
			b.ExpiresAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if len(b.Slots) > 0 {
		insertBuilder := psqlbuilder.Insert("booking_slots").
			Columns("booking_id", "position", "slot_id", "hour", "start_time", "end_time", "price")
		for i, s := range b.Slots {
			insertBuilder = insertBuilder.Values(b.ID, i, s.SlotID, s.Hour, s.StartTime, s.EndTime, s.Price)
		}

		query, args, err = insertBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build slots insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute slots insert: %v", ErrExecQuery, err)
		}
	}

	return b, nil
}

// GetByID получает бронирование по ID вместе со снапшотами слотов
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.loadSlots(ctx, executor, []*domain.Booking{b}); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByCustomerID получает историю бронирований клиента (сначала новые)
func (r *Repository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{CustomerID: &customerID}
	return r.ListWithFilter(ctx, filter)
}

// ListWithFilter получает бронирования с гибкой фильтрацией для админ-панели.
// Поддерживает фильтры по клиенту, статусу оплаты, дате и подстроке в
// имени/email клиента.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.PaymentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": domain.FormatDate(*filter.Date)})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"customer_email": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadSlots(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// ListExpiredPending возвращает просроченные неоплаченные online-бронирования.
// Их слоты никогда не переводились в booked, поэтому удаление такого
// бронирования не требует освобождения слотов.
func (r *Repository) ListExpiredPending(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"payment_method": domain.PayOnline}).
		Where(squirrel.Eq{"payment_status": domain.PaymentPending}).
		Where(squirrel.Eq{"booking_status": domain.BookingPending}).
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdatePaymentStatus обновляет статусы оплаты и подтверждения бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus domain.PaymentStatus, bookingStatus domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", paymentStatus).
		Set("booking_status", bookingStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ConfirmPayment помечает online-бронирование оплаченным и подтвержденным,
// сохраняет идентификатор платежа и снимает срок истечения
func (r *Repository) ConfirmPayment(ctx context.Context, id string, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", domain.PaymentPaid).
		Set("booking_status", domain.BookingConfirmed).
		Set("payment_id", paymentID).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование; снапшоты удаляются каскадом.
// Освобождение слотов — ответственность вызывающего (в одной транзакции).
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var dateStr string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.CustomerName,
		&b.CustomerEmail,
		&dateStr,
		&b.TotalAmount,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.BookingStatus,
		&b.PaymentOrderID,
		&b.PaymentID,
		&b.ExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid booking_date %q: %v", dateStr, err)
	}

	b.Date = date
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	b.Slots = make([]domain.BookingSlot, 0)

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// loadSlots подгружает снапшоты слотов для набора бронирований
func (r *Repository) loadSlots(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, len(bookings))
	byID := make(map[string]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select("booking_id", "slot_id", "hour", "start_time", "end_time", "price").
		From("booking_slots").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id, position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID string
		var s domain.BookingSlot
		if err := rows.Scan(&bookingID, &s.SlotID, &s.Hour, &s.StartTime, &s.EndTime, &s.Price); err != nil {
			return fmt.Errorf("%w: loadSlots - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Slots = append(b.Slots, s)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}

	return nil
}
