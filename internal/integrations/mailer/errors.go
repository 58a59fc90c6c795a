package mailer

import "errors"

var (
	// ErrSendFailed возвращается, когда почтовый сервис отклонил отправку
	ErrSendFailed = errors.New("mailer client: failed to send email")

	// ErrUnavailable возвращается, когда почтовый сервис недоступен
	ErrUnavailable = errors.New("mailer client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")
)
