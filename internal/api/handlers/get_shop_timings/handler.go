package get_shop_timings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/domain"
)

const msgShopNotFound = "магазин не найден"

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

// Handle GET /api/v1/shops/{shopId}/timings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	shop, err := h.service.GetShopTimings(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			h.logger.Warn("GET /shops/{id}/timings - Shop not found: shop_id=%s", shopID)
			handlers.RespondDomainError(w, err, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id}/timings - Failed to get timings: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shop)
}
