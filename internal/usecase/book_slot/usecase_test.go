package book_slot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/infra/storage/memory"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/types"
	"github.com/khan47650/central-kitchen/pkg/zonetime"
)

const date = types.Date("2025-06-10")

type recordingNotifier struct {
	events chan *domain.Slot
	err    error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(chan *domain.Slot, 16)}
}

func (n *recordingNotifier) NotifyBooked(_ context.Context, slot *domain.Slot) error {
	n.events <- slot
	return n.err
}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	notifier *recordingNotifier
}

// now = 2025-06-10 14:00 America/Phoenix
func newFixture(t *testing.T) *fixture {
	t.Helper()

	zone, err := zonetime.Load(zonetime.DefaultZone)
	require.NoError(t, err)
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, zone.Location())
	zone = zone.WithClock(func() time.Time { return now })

	store := memory.NewStore()
	n := newRecordingNotifier()
	uc := NewUseCase(store.Slots, store.Tx, zone, n, nil, logger.Nop(), domain.DefaultMaxBookingHours)
	return &fixture{uc: uc, store: store, notifier: n}
}

func (f *fixture) seed(t *testing.T, start types.TimeString, hours int, state domain.SlotState, occupant domain.Actor) *domain.Slot {
	t.Helper()
	end, err := start.AddHours(hours)
	require.NoError(t, err)
	slot, err := f.store.Slots.Create(context.Background(), &domain.Slot{
		Date: date, StartTime: start, EndTime: end, State: state, Occupant: occupant,
	})
	require.NoError(t, err)
	return slot
}

func TestExecute_BooksFreeSlot(t *testing.T) {
	f := newFixture(t)
	free := f.seed(t, "15:00", 1, domain.SlotFree, domain.Actor{})

	slot, err := f.uc.Execute(context.Background(), &Request{
		SlotID: free.ID, DurationHours: 2, Actor: domain.Client("u1"),
	})
	require.NoError(t, err)

	assert.True(t, slot.IsBooked())
	assert.Equal(t, "u1", slot.Occupant.ClientID())
	assert.Equal(t, types.TimeString("17:00"), slot.EndTime)

	select {
	case notified := <-f.notifier.events:
		assert.Equal(t, free.ID, notified.ID)
	case <-time.After(time.Second):
		t.Fatal("booking confirmation was not published")
	}
}

func TestExecute_PastSlot(t *testing.T) {
	f := newFixture(t)
	past := f.seed(t, "13:00", 1, domain.SlotFree, domain.Actor{})

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: past.ID, DurationHours: 1, Actor: domain.Client("u1")})
	assert.ErrorIs(t, err, domain.ErrPastSlot)

	stored, err := f.store.Slots.GetByID(context.Background(), past.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFree(), "rejected booking leaves the slot untouched")
}

func TestExecute_StartingNowIsAllowed(t *testing.T) {
	f := newFixture(t)
	slot := f.seed(t, "14:00", 1, domain.SlotFree, domain.Actor{})

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: slot.ID, DurationHours: 1, Actor: domain.Client("u1")})
	assert.NoError(t, err)
}

func TestExecute_StateRules(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.SlotState
		occupant domain.Actor
		req      Request
		want     error
	}{
		{
			name:  "blocked slot rejects client",
			state: domain.SlotBlocked, occupant: domain.Admin(),
			req:  Request{DurationHours: 1, Actor: domain.Client("u1")},
			want: domain.ErrSlotUnavailable,
		},
		{
			name:  "blocked slot rejects plain admin booking",
			state: domain.SlotBlocked, occupant: domain.Admin(),
			req:  Request{DurationHours: 1, Actor: domain.Admin()},
			want: domain.ErrSlotUnavailable,
		},
		{
			name:  "booked slot rejects client",
			state: domain.SlotBooked, occupant: domain.Client("u2"),
			req:  Request{DurationHours: 1, Actor: domain.Client("u1")},
			want: domain.ErrAlreadyBooked,
		},
		{
			name:  "booked slot rejects re-block",
			state: domain.SlotBooked, occupant: domain.Client("u2"),
			req:  Request{DurationHours: 1, MarkUnavailable: true, Actor: domain.Admin()},
			want: domain.ErrDeleteExistingFirst,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			slot := f.seed(t, "16:00", 1, tt.state, tt.occupant)

			req := tt.req
			req.SlotID = slot.ID
			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_ReblockIgnoresPastWhenBooked(t *testing.T) {
	f := newFixture(t)
	slot := f.seed(t, "09:00", 1, domain.SlotBooked, domain.Client("u2"))

	_, err := f.uc.Execute(context.Background(), &Request{
		SlotID: slot.ID, DurationHours: 1, MarkUnavailable: true, Actor: domain.Admin(),
	})
	assert.ErrorIs(t, err, domain.ErrDeleteExistingFirst)
}

func TestExecute_AdminOverrideExtendsBlock(t *testing.T) {
	f := newFixture(t)
	slot := f.seed(t, "16:00", 1, domain.SlotBlocked, domain.Admin())

	updated, err := f.uc.Execute(context.Background(), &Request{
		SlotID: slot.ID, DurationHours: 4, MarkUnavailable: true, Actor: domain.Admin(),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked())
	assert.Equal(t, types.TimeString("20:00"), updated.EndTime)
}

func TestExecute_ExtendingIntoNeighbour(t *testing.T) {
	f := newFixture(t)
	slot := f.seed(t, "15:00", 1, domain.SlotFree, domain.Actor{})
	f.seed(t, "16:00", 1, domain.SlotFree, domain.Actor{})

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: slot.ID, DurationHours: 2, Actor: domain.Client("u1")})
	assert.ErrorIs(t, err, domain.ErrOverlapsExisting)

	_, err = f.uc.Execute(context.Background(), &Request{
		SlotID: slot.ID, DurationHours: 2, MarkUnavailable: true, Actor: domain.Admin(),
	})
	assert.ErrorIs(t, err, domain.ErrDeleteExistingFirst)

	_, err = f.uc.Execute(context.Background(), &Request{SlotID: slot.ID, DurationHours: 1, Actor: domain.Client("u1")})
	assert.NoError(t, err, "touching the neighbour is allowed")
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)
	slot := f.seed(t, "15:00", 1, domain.SlotFree, domain.Actor{})

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "missing actor", req: Request{SlotID: slot.ID, DurationHours: 1}, want: domain.ErrMissingActor},
		{name: "missing id", req: Request{DurationHours: 1, Actor: domain.Admin()}, want: domain.ErrInvalidInput},
		{name: "unknown id", req: Request{SlotID: "nope", DurationHours: 1, Actor: domain.Admin()}, want: domain.ErrSlotNotFound},
		{name: "zero duration", req: Request{SlotID: slot.ID, Actor: domain.Admin()}, want: domain.ErrInvalidInput},
		{name: "client cap", req: Request{SlotID: slot.ID, DurationHours: 4, Actor: domain.Client("u1")}, want: domain.ErrInvalidInput},
		{name: "client block", req: Request{SlotID: slot.ID, DurationHours: 1, MarkUnavailable: true, Actor: domain.Client("u1")}, want: domain.ErrInvalidInput},
		{name: "past midnight", req: Request{SlotID: slot.ID, DurationHours: 9, Actor: domain.Admin()}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_NotifierFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("redis down")
	slot := f.seed(t, "18:00", 1, domain.SlotFree, domain.Actor{})

	_, err := f.uc.Execute(context.Background(), &Request{SlotID: slot.ID, DurationHours: 1, Actor: domain.Client("u1")})
	require.NoError(t, err)

	select {
	case <-f.notifier.events:
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}
}

// Concurrent bookings that stretch adjacent free slots never leave overlapping intervals behind.
func TestExecute_ConcurrentBookingsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(7))

	var ids []string
	for h := 15; h < 23; h++ {
		slot := f.seed(t, types.TimeString(fmt.Sprintf("%02d:00", h)), 1, domain.SlotFree, domain.Actor{})
		ids = append(ids, slot.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		req := Request{
			SlotID:        ids[rng.Intn(len(ids))],
			DurationHours: 1 + rng.Intn(3),
			Actor:         domain.Client(fmt.Sprintf("u%d", i)),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.uc.Execute(context.Background(), &req)
		}()
	}
	wg.Wait()

	slots, err := f.store.Slots.ListByDate(context.Background(), date)
	require.NoError(t, err)
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			aStart, aEnd, err := slots[i].Interval()
			require.NoError(t, err)
			bStart, bEnd, err := slots[j].Interval()
			require.NoError(t, err)
			assert.False(t, domain.Overlaps(aStart, aEnd, bStart, bEnd))
		}
	}
}
