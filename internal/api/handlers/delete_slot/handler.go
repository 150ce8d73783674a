package delete_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
)

const (
	msgMissingUser  = "отсутствует идентификатор пользователя"
	msgSlotNotFound = "слот не найден"
	msgForbidden    = "можно удалить только свое бронирование"
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

// DeleteSlotResponse HTTP response model
type DeleteSlotResponse struct {
	Message string `json:"message"`
	SlotID  string `json:"slotId"`
}

// Handle DELETE /api/v1/slots/{slotId}
// Администратор удаляет любой слот, клиент только занятый им.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /slots/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if !actor.IsAdmin() {
		slot, err := h.service.GetSlot(r.Context(), slotID)
		if err != nil {
			h.respondError(w, slotID, err)
			return
		}
		if slot.Occupant != actor {
			h.logger.Warn("DELETE /slots/{id} - Access denied: slot_id=%s, actor=%s, occupant=%s", slotID, actor, slot.Occupant)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	if err := h.service.DeleteSlot(r.Context(), slotID); err != nil {
		h.respondError(w, slotID, err)
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deleted: slot_id=%s, actor=%s", slotID, actor)
	handlers.RespondJSON(w, http.StatusOK, DeleteSlotResponse{Message: "slot deleted", SlotID: slotID})
}

func (h *Handler) respondError(w http.ResponseWriter, slotID string, err error) {
	if errors.Is(err, domain.ErrSlotNotFound) {
		h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%s", slotID)
		handlers.RespondDomainError(w, err, msgSlotNotFound)
		return
	}
	h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
	handlers.RespondInternalError(w)
}
