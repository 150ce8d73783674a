package create_shop

import (
	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/service/shops/models"
)

// CreateShopRequest HTTP request model
type CreateShopRequest struct {
	OwnerID     string `json:"userId"` // учитывается только для администратора
	Name        string `json:"shopName"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса. Клиент всегда создает магазин на себя.
func (r *CreateShopRequest) ToServiceRequest(actor domain.Actor) *models.CreateShopRequest {
	owner := r.OwnerID
	if !actor.IsAdmin() {
		owner = actor.ClientID()
	}
	return &models.CreateShopRequest{
		OwnerID:     owner,
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
	}
}
