package update_shop_timings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/service/shops/models"
	updateTimings "github.com/khan47650/central-kitchen/internal/usecase/update_shop_timings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует идентификатор пользователя"
	msgShopNotFound       = "магазин не найден"
	msgInvalidRow         = "некорректная строка расписания"
	msgForbidden          = "изменять расписание может только владелец магазина"
)

type Handler struct {
	useCase UpdateShopTimingsUseCase
	logger  Logger
}

func NewHandler(useCase UpdateShopTimingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/timings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id}/timings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.UpdateTimingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/timings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.Execute(r.Context(), &updateTimings.Request{
		ShopID:      shopID,
		Timings:     req.ToDomainRows(),
		Actor:       actor,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrShopNotFound):
			msg = msgShopNotFound
		case errors.Is(err, domain.ErrForbidden):
			msg = msgForbidden
		case errors.Is(err, domain.ErrInvalidRow):
			msg = msgInvalidRow
		default:
			h.logger.Error("PUT /shops/{id}/timings - Failed to update timings: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("PUT /shops/{id}/timings - Rejected: shop_id=%s, actor=%s, reason=%v", shopID, actor, err)
		handlers.RespondDomainError(w, err, msg)
		return
	}

	h.logger.Info("PUT /shops/{id}/timings - Timings saved: shop_id=%s, status=%s", shopID, view.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainView(view))
}
