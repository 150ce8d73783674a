package update_shop_timings

import "github.com/khan47650/central-kitchen/internal/domain"

// Request модель запроса на обновление расписания магазина
type Request struct {
	ShopID  string             // ID магазина
	Timings []domain.TimingRow // Новые строки расписания (отсутствующие дни закрыты)
	Actor   domain.Actor       // Владелец магазина или администратор

	// Необязательные поля профиля, nil - не менять
	Name        *string
	Address     *string
	Description *string
}
