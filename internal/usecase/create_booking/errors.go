package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, если хотя бы один запрошенный слот не существует
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotInPast возвращается при попытке забронировать прошедший слот
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrSlotConflict возвращается, если хотя бы один слот уже занят или закрыт
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrPaymentUnavailable возвращается при недоступности платёжного шлюза
	ErrPaymentUnavailable = errors.New("create_booking: payment gateway unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
