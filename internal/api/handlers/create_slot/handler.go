package create_slot

import (
	"errors"
	"net/http"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/service/slots/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUser         = "отсутствует идентификатор пользователя"
	msgInvalidInput        = "некорректные данные слота"
	msgInvalidFormat       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgOverlapsExisting    = "слот пересекается с существующим слотом"
	msgOverlapsUnavailable = "слот пересекается с недоступным временем"
)

type Handler struct {
	useCase CreateSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /slots - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOverlapsUnavailable):
			h.logger.Warn("POST /slots - Overlaps unavailable: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondDomainError(w, err, msgOverlapsUnavailable)

		case errors.Is(err, domain.ErrOverlapsExisting):
			h.logger.Warn("POST /slots - Overlaps existing: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondDomainError(w, err, msgOverlapsExisting)

		case domain.KindOf(err) == domain.KindInvalidTimeFormat:
			h.logger.Warn("POST /slots - Invalid format: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondDomainError(w, err, msgInvalidFormat)

		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		default:
			h.logger.Error("POST /slots - Failed to create slot: date=%s, start=%s, error=%v", req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%s, actor=%s", slot.ID, actor)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainSlot(slot))
}
