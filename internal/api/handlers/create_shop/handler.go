package create_shop

import (
	"errors"
	"net/http"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/api/middleware"
	"github.com/khan47650/central-kitchen/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует идентификатор пользователя"
	msgMissingOwner       = "не указан владелец магазина"
	msgInvalidInput       = "не указано название магазина"
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

// Handle POST /api/v1/shops
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /shops - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateShopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	shop, err := h.service.CreateShop(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingActor):
			h.logger.Warn("POST /shops - Missing owner: actor=%s", actor)
			handlers.RespondDomainError(w, err, msgMissingOwner)
		case errors.Is(err, domain.ErrInvalidInput):
			h.logger.Warn("POST /shops - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)
		default:
			h.logger.Error("POST /shops - Failed to create shop: actor=%s, error=%v", actor, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops - Shop created successfully: shop_id=%s, owner=%s", shop.ID, shop.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, shop)
}
