package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingUserID = "не указан заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgInvalidRole   = "некорректный заголовок X-User-Role"
)

type actorKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает действующего пользователя из заголовков запроса
// Аутентификация выполняется выше по инфраструктуре (gateway),
// сервис доверяет заголовкам X-User-ID и X-User-Role
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(headerUserID)
			if rawID == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, headerUserID)
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerUserID, rawID)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidUserID)
				return
			}

			role := domain.Role(r.Header.Get(headerUserRole))
			if role == "" {
				role = domain.RoleMember
			}
			if !domain.ValidRole(role) {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerUserRole, role)
				handlers.RespondError(w, http.StatusUnauthorized, msgInvalidRole)
				return
			}

			actor := domain.Actor{UserID: userID, Role: role}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет действующего пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext возвращает действующего пользователя из контекста
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
