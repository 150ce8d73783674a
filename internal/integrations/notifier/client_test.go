package notifier

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/logger"
)

func TestRedisNotifier_NotifyBooked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	n := NewRedisNotifier(client, "kitchen:bookings", 1000, logger.Nop())

	slot := &domain.Slot{
		ID: "slot-1", Date: "2025-06-10", StartTime: "15:00", EndTime: "17:00",
		State: domain.SlotBooked, Occupant: domain.Client("u-9"),
	}
	require.NoError(t, n.NotifyBooked(context.Background(), slot))

	blocked := &domain.Slot{
		ID: "slot-2", Date: "2025-06-10", StartTime: "18:00", EndTime: "19:00",
		State: domain.SlotBlocked, Occupant: domain.Admin(),
	}
	require.NoError(t, n.NotifyBooked(context.Background(), blocked))

	entries, err := client.XRange(context.Background(), "kitchen:bookings", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, EventSlotBooked, entries[0].Values["type"])
	assert.Equal(t, "u-9", entries[0].Values["booked_by"])
	assert.Equal(t, "15:00", entries[0].Values["start_time"])
	assert.Equal(t, EventSlotBlocked, entries[1].Values["type"])
	assert.Equal(t, domain.AdminSentinel, entries[1].Values["booked_by"])
}

func TestRedisNotifier_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	n := NewRedisNotifier(client, "kitchen:bookings", 0, logger.Nop())
	err := n.NotifyBooked(context.Background(), &domain.Slot{ID: "slot-1"})
	assert.ErrorIs(t, err, ErrPublish)
}
