package get_day_stats

import (
	"errors"
	"net/http"

	"github.com/khan47650/central-kitchen/internal/api/handlers"
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/slots/stats?date=YYYY-MM-DD (без даты - сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := types.Date(r.URL.Query().Get("date"))

	stats, err := h.service.GetDayStats(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTimeFormat) {
			h.logger.Warn("GET /slots/stats - Invalid date: %s", date)
			handlers.RespondDomainError(w, err, msgInvalidDate)
			return
		}
		h.logger.Error("GET /slots/stats - Failed to get stats: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
