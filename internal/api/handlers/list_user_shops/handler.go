package list_user_shops

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
)

const (
	msgMissingUser = "отсутствует идентификатор пользователя"
	msgForbidden   = "доступ запрещен"
)

type Handler struct {
	service ShopService
	logger  Logger
}

func NewHandler(service ShopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/shops
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/shops - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	if !actor.IsAdmin() && actor.ClientID() != userID {
		h.logger.Warn("GET /users/{id}/shops - Access denied: actor=%s, user_id=%s", actor, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	shops, err := h.service.ListOwnerShops(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/shops - Failed to list shops: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shops)
}
