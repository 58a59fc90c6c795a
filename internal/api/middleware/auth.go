package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/PicklePlay-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	adminKey  contextKey = "isAdmin"
)

// Auth middleware аутентификации клиента по заголовку X-User-ID.
// Проверка подлинности выполняется на API-гейтвее, сервис доверяет
// заголовку внутри периметра.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth middleware доступа к админ-операциям по заголовку X-Admin-Token.
// Сравнение токена константным временем.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Token")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFlag middleware помечает запрос как админский, если предъявлен
// корректный X-Admin-Token. В отличие от AdminAuth отсутствие или
// несовпадение токена не отклоняет запрос: клиентские маршруты остаются
// доступными, но без админских прав.
func AdminFlag(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Token")
			if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1 {
				r = r.WithContext(context.WithValue(r.Context(), adminKey, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// IsAdmin сообщает, прошел ли запрос через AdminAuth
func IsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminKey).(bool)
	return ok && isAdmin
}
