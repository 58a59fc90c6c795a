package razorpay

import "errors"

var (
	// ErrOrderCreation возвращается, когда шлюз отклонил создание заказа
	ErrOrderCreation = errors.New("razorpay client: failed to create order")

	// ErrInvalidSignature возвращается, когда подпись платежа не прошла проверку
	ErrInvalidSignature = errors.New("razorpay client: invalid payment signature")

	// ErrUnavailable возвращается, когда шлюз недоступен или не отвечает
	ErrUnavailable = errors.New("razorpay client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("razorpay client: internal error")
)
