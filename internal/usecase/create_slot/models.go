package create_slot

import (
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// Request модель запроса на создание слота
type Request struct {
	Date            types.Date       // Дата слота (YYYY-MM-DD, зона кухни)
	StartTime       types.TimeString // Время начала (HH:MM)
	DurationHours   int              // Длительность в целых часах
	MarkUnavailable bool             // Сразу создать административную блокировку
	Actor           domain.Actor     // Кто создает слот (для блокировки нужен администратор)
}
