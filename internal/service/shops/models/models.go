package models

import (
	"time"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/types"
)

// Request модели

// CreateShopRequest запрос на создание магазина
type CreateShopRequest struct {
	OwnerID     string `json:"-"`
	Name        string `json:"shopName"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// TimingRowRequest строка расписания в запросе
type TimingRowRequest struct {
	Day        string `json:"day"`
	Open       bool   `json:"open"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	Break      bool   `json:"break"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// UpdateTimingsRequest запрос на обновление расписания и профиля магазина
type UpdateTimingsRequest struct {
	Timings     []TimingRowRequest `json:"timings"`
	Name        *string            `json:"shopName,omitempty"`
	Address     *string            `json:"address,omitempty"`
	Description *string            `json:"description,omitempty"`
}

// ToDomainRows конвертирует строки запроса в domain
func (r *UpdateTimingsRequest) ToDomainRows() []domain.TimingRow {
	rows := make([]domain.TimingRow, 0, len(r.Timings))
	for _, t := range r.Timings {
		rows = append(rows, domain.TimingRow{
			Day:        domain.Weekday(t.Day),
			Open:       t.Open,
			OpenTime:   types.TimeString(t.OpenTime),
			CloseTime:  types.TimeString(t.CloseTime),
			Break:      t.Break,
			BreakStart: types.TimeString(t.BreakStart),
			BreakEnd:   types.TimeString(t.BreakEnd),
		})
	}
	return rows
}

// Response модели

// TimingRowResponse строка расписания с признаком блокировки
type TimingRowResponse struct {
	Day             string `json:"day"`
	Open            bool   `json:"open"`
	OpenTime        string `json:"openTime"`
	CloseTime       string `json:"closeTime"`
	Break           bool   `json:"break"`
	BreakStart      string `json:"breakStart"`
	BreakEnd        string `json:"breakEnd"`
	IsLockedForEdit bool   `json:"isLockedForEdit"`
}

// ShopResponse ответ с данными магазина, расписанием и текущим статусом
type ShopResponse struct {
	ID          string              `json:"id"`
	OwnerID     string              `json:"userId"`
	Name        string              `json:"shopName"`
	Address     string              `json:"address"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Timings     []TimingRowResponse `json:"timings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainView конвертирует представление магазина в DTO
func FromDomainView(v *domain.ShopView) *ShopResponse {
	if v == nil || v.Shop == nil {
		return nil
	}

	resp := &ShopResponse{
		ID:          v.Shop.ID,
		OwnerID:     v.Shop.OwnerID,
		Name:        v.Shop.Name,
		Address:     v.Shop.Address,
		Description: v.Shop.Description,
		Status:      string(v.Status),
		Timings:     make([]TimingRowResponse, 0, len(v.Rows)),
		CreatedAt:   v.Shop.CreatedAt,
		UpdatedAt:   v.Shop.UpdatedAt,
	}
	for _, r := range v.Rows {
		resp.Timings = append(resp.Timings, TimingRowResponse{
			Day:             string(r.Day),
			Open:            r.Open,
			OpenTime:        r.OpenTime.String(),
			CloseTime:       r.CloseTime.String(),
			Break:           r.Break,
			BreakStart:      r.BreakStart.String(),
			BreakEnd:        r.BreakEnd.String(),
			IsLockedForEdit: r.IsLockedForEdit,
		})
	}
	return resp
}
