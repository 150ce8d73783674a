package list_user_slots

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
)

const (
	msgMissingUser = "отсутствует идентификатор пользователя"
	msgForbidden   = "доступ запрещен"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/slots
// userId "Admin" в запросе администратора выбирает его блокировки и бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	caller, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/slots - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	// "Admin" означает администратора только в запросе администратора,
	// клиент с таким ID читает свои бронирования
	target := domain.Client(userID)
	if caller.IsAdmin() && userID == domain.AdminSentinel {
		target = domain.Admin()
	}

	// Клиент видит только свои бронирования, администратор любые
	if !caller.IsAdmin() && caller != target {
		h.logger.Warn("GET /users/{id}/slots - Access denied: caller=%s, target=%s", caller, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	slots, err := h.service.ListSlotsForActor(r.Context(), target)
	if err != nil {
		h.logger.Error("GET /users/{id}/slots - Failed to list slots: user_id=%s, error=%v", userID, err)
		handlers.RespondDomainError(w, err, msgMissingUser)
		return
	}

	h.logger.Info("GET /users/{id}/slots - Fetched %d slots for user_id=%s", len(slots), userID)
	handlers.RespondJSON(w, http.StatusOK, slots)
}
