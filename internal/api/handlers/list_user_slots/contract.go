package list_user_slots

import (
	"context"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/service/slots/models"
)

type SlotService interface {
	ListSlotsForActor(ctx context.Context, actor domain.Actor) ([]models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
