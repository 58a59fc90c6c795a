package confirm_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrBookingNotFound возвращается, если бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrAccessDenied возвращается при попытке подтвердить чужое бронирование
	ErrAccessDenied = errors.New("confirm_payment: access denied")

	// ErrInvalidSignature возвращается при неверной подписи платежа
	ErrInvalidSignature = errors.New("confirm_payment: invalid payment signature")

	// ErrBookingExpired возвращается, если pending-бронирование истекло до
	// подтверждения платежа
	ErrBookingExpired = errors.New("confirm_payment: booking expired")

	// ErrSlotConflict возвращается, если слоты увели, пока платеж был в полете
	ErrSlotConflict = errors.New("confirm_payment: slot is no longer available")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("confirm_payment: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
