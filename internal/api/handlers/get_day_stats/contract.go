package get_day_stats

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/service/slots/models"
	"github.com/khan47650/central-kitchen/pkg/types"
)

type SlotService interface {
	GetDayStats(ctx context.Context, date types.Date) (*models.DayStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
