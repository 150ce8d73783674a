package book_slot

import "github.com/khan47650/central-kitchen/internal/domain"

// Request модель запроса на бронирование слота
type Request struct {
	SlotID          string       // ID существующего слота
	DurationHours   int          // Новая длительность в целых часах
	MarkUnavailable bool         // Заблокировать слот вместо бронирования (только администратор)
	Actor           domain.Actor // Администратор или клиент
}

// adminOverride администратор перезаписывает блокировку
func (r *Request) adminOverride() bool {
	return r.Actor.IsAdmin() && r.MarkUnavailable
}
