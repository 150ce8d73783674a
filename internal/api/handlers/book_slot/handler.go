package book_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/service/slots/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUser         = "отсутствует идентификатор пользователя"
	msgInvalidInput        = "некорректные данные бронирования"
	msgSlotNotFound        = "слот не найден"
	msgAlreadyBooked       = "слот уже забронирован"
	msgSlotUnavailable     = "слот недоступен"
	msgPastSlot            = "время начала слота уже прошло"
	msgOverlapsExisting    = "новое время пересекается с другим слотом"
	msgDeleteExistingFirst = "сначала удалите существующее бронирование"
	msgInvalidFormat       = "некорректный формат времени слота"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /slots/{id}/book - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(slotID, actor))
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrSlotNotFound):
			msg = msgSlotNotFound
		case errors.Is(err, domain.ErrDeleteExistingFirst):
			msg = msgDeleteExistingFirst
		case errors.Is(err, domain.ErrSlotUnavailable):
			msg = msgSlotUnavailable
		case errors.Is(err, domain.ErrAlreadyBooked):
			msg = msgAlreadyBooked
		case errors.Is(err, domain.ErrPastSlot):
			msg = msgPastSlot
		case errors.Is(err, domain.ErrOverlapsExisting):
			msg = msgOverlapsExisting
		case errors.Is(err, domain.ErrMissingActor):
			msg = msgMissingUser
		case errors.Is(err, domain.ErrInvalidInput):
			msg = msgInvalidInput
		case domain.KindOf(err) == domain.KindInvalidTimeFormat:
			msg = msgInvalidFormat
		default:
			h.logger.Error("POST /slots/{id}/book - Failed to book slot: slot_id=%s, actor=%s, error=%v", slotID, actor, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /slots/{id}/book - Rejected: slot_id=%s, actor=%s, reason=%v", slotID, actor, err)
		handlers.RespondDomainError(w, err, msg)
		return
	}

	h.logger.Info("POST /slots/{id}/book - Slot %s successfully: slot_id=%s, actor=%s", slot.State, slot.ID, actor)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(slot))
}
