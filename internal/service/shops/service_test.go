package shops

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/infra/storage/memory"
	"github.com/khan47650/central-kitchen/internal/service/shops/models"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/zonetime"
)

// now = Monday 2025-06-09 12:30 America/Phoenix
func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	zone, err := zonetime.Load(zonetime.DefaultZone)
	require.NoError(t, err)
	now := time.Date(2025, 6, 9, 12, 30, 0, 0, zone.Location())
	zone = zone.WithClock(func() time.Time { return now })

	store := memory.NewStore()
	return NewService(store.Shops, store.Tx, zone, 2*time.Hour, logger.Nop()), store
}

func TestCreateShop_SeedsClosedWeek(t *testing.T) {
	svc, _ := newService(t)

	shop, err := svc.CreateShop(context.Background(), &models.CreateShopRequest{OwnerID: "owner", Name: "Tacos"})
	require.NoError(t, err)

	require.Len(t, shop.Timings, 7)
	assert.Equal(t, "Mon", shop.Timings[0].Day)
	assert.Equal(t, "Sun", shop.Timings[6].Day)
	for _, row := range shop.Timings {
		assert.False(t, row.Open)
		assert.False(t, row.IsLockedForEdit)
	}
	assert.Equal(t, string(domain.StatusClose), shop.Status)

	_, err = svc.CreateShop(context.Background(), &models.CreateShopRequest{OwnerID: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetShopTimings_DerivesStatusAndLocks(t *testing.T) {
	svc, store := newService(t)

	table := domain.NewTimetable()
	table[domain.Mon] = domain.TimingRow{
		Day: domain.Mon, Open: true, OpenTime: "09:00", CloseTime: "17:00",
		Break: true, BreakStart: "12:00", BreakEnd: "13:00",
	}
	table[domain.Fri] = domain.TimingRow{Day: domain.Fri, Open: true, OpenTime: "15:00", CloseTime: "22:00"}
	shop, err := store.Shops.Create(context.Background(), &domain.Shop{OwnerID: "owner", Name: "Tacos", Timings: table})
	require.NoError(t, err)

	resp, err := svc.GetShopTimings(context.Background(), shop.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusBreak), resp.Status)
	assert.True(t, resp.Timings[0].IsLockedForEdit, "Mon 09:00 opening locks at 07:00")
	assert.False(t, resp.Timings[4].IsLockedForEdit, "Fri 15:00 opening locks at 13:00 on the current clock")

	_, err = svc.GetShopTimings(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrShopNotFound)
}

func TestListOwnerShopsAndDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateShop(ctx, &models.CreateShopRequest{OwnerID: "owner", Name: "A"})
	require.NoError(t, err)
	_, err = svc.CreateShop(ctx, &models.CreateShopRequest{OwnerID: "other", Name: "B"})
	require.NoError(t, err)

	shops, err := svc.ListOwnerShops(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, a.ID, shops[0].ID)

	all, err := svc.ListShops(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteShop(ctx, a.ID))
	assert.ErrorIs(t, svc.DeleteShop(ctx, a.ID), domain.ErrShopNotFound)
}
