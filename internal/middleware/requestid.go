package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// RequestIDKey ключ идентификатора запроса в контексте
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader заголовок, в котором передается идентификатор запроса
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLen = 128
)

// RequestID присваивает запросу идентификатор. Идентификатор клиента
// используется, если он задан и не слишком длинный, иначе генерируется UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID возвращает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
