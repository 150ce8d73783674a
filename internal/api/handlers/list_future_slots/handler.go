package list_future_slots

import (
	"net/http"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
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

// Handle GET /api/v1/slots/future
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.ListFutureSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /slots/future - Failed to list future slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slots)
}
