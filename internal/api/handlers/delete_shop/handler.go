package delete_shop

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
	msgShopNotFound = "магазин не найден"
	msgForbidden    = "удалить магазин может только владелец"
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

// Handle DELETE /api/v1/shops/{shopId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /shops/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	shop, err := h.service.GetShop(r.Context(), shopID)
	if err != nil {
		h.respondError(w, shopID, err)
		return
	}
	if !shop.OwnedBy(actor) {
		h.logger.Warn("DELETE /shops/{id} - Access denied: shop_id=%s, actor=%s", shopID, actor)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.DeleteShop(r.Context(), shopID); err != nil {
		h.respondError(w, shopID, err)
		return
	}

	h.logger.Info("DELETE /shops/{id} - Shop deleted: shop_id=%s, actor=%s", shopID, actor)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, shopID string, err error) {
	if errors.Is(err, domain.ErrShopNotFound) {
		h.logger.Warn("DELETE /shops/{id} - Shop not found: shop_id=%s", shopID)
		handlers.RespondDomainError(w, err, msgShopNotFound)
		return
	}
	h.logger.Error("DELETE /shops/{id} - Failed to delete shop: shop_id=%s, error=%v", shopID, err)
	handlers.RespondInternalError(w)
}
