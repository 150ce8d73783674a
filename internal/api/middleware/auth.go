package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/domain"
)

// Заголовки, которые выставляет провайдер идентификации перед сервисом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUser = "отсутствует идентификатор пользователя"
	msgInvalidRole = "некорректная роль пользователя"
	msgAdminOnly   = "доступно только администратору"
)

type actorKey struct{}

// WithActor кладет участника в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достает участника, установленного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok && !actor.IsZero()
}

// Auth строит участника из X-User-ID и X-User-Role (admin|client, по умолчанию client)
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get(HeaderUserRole)
		id := r.Header.Get(HeaderUserID)

		actor, err := domain.ParseActor(role, id)
		if err != nil {
			if errors.Is(err, domain.ErrMissingActor) {
				handlers.RespondUnauthorized(w, msgMissingUser)
				return
			}
			handlers.RespondBadRequest(w, msgInvalidRole)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireAdmin пропускает только администратора. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
