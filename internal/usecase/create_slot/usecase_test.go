package create_slot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/internal/infra/storage/memory"
	"github.com/khan47650/central-kitchen/pkg/logger"
	"github.com/khan47650/central-kitchen/pkg/types"
)

const date = types.Date("2025-06-10")

func newUseCase() (*UseCase, *memory.Store) {
	store := memory.NewStore()
	return NewUseCase(store.Slots, store.Tx, nil, logger.Nop(), domain.DefaultMaxBookingHours), store
}

func TestExecute_CreatesFreeSlot(t *testing.T) {
	uc, _ := newUseCase()

	slot, err := uc.Execute(context.Background(), &Request{
		Date: date, StartTime: "09:00", DurationHours: 2, Actor: domain.Client("u1"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, types.TimeString("11:00"), slot.EndTime)
	assert.True(t, slot.IsFree())
	assert.True(t, slot.Occupant.IsZero())
}

func TestExecute_AdminBlock(t *testing.T) {
	uc, _ := newUseCase()

	slot, err := uc.Execute(context.Background(), &Request{
		Date: date, StartTime: "08:00", DurationHours: 8, MarkUnavailable: true, Actor: domain.Admin(),
	})
	require.NoError(t, err)
	assert.True(t, slot.IsBlocked())
	assert.True(t, slot.Occupant.IsAdmin())
	assert.Equal(t, types.TimeString("16:00"), slot.EndTime)
}

func TestExecute_HalfOpenBoundary(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Date: date, StartTime: "08:00", DurationHours: 2, Actor: domain.Admin()})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{Date: date, StartTime: "10:00", DurationHours: 1, Actor: domain.Admin()})
	require.NoError(t, err, "a slot starting when another ends does not conflict")

	_, err = uc.Execute(ctx, &Request{Date: date, StartTime: "09:00", DurationHours: 1, Actor: domain.Admin()})
	assert.ErrorIs(t, err, domain.ErrOverlapsExisting)

	_, err = uc.Execute(ctx, &Request{Date: "2025-06-11", StartTime: "09:00", DurationHours: 1, Actor: domain.Admin()})
	require.NoError(t, err, "other dates are independent")
}

func TestExecute_OverlapsUnavailable(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{
		Date: date, StartTime: "12:00", DurationHours: 2, MarkUnavailable: true, Actor: domain.Admin(),
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{Date: date, StartTime: "13:00", DurationHours: 1, Actor: domain.Client("u1")})
	assert.ErrorIs(t, err, domain.ErrOverlapsUnavailable)
	assert.Equal(t, domain.KindOverlapsUnavailable, domain.KindOf(err))
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase()

	tests := []struct {
		name string
		req  Request
		kind string
	}{
		{name: "missing date", req: Request{StartTime: "09:00", DurationHours: 1}, kind: domain.KindInvalidInput},
		{name: "bad date", req: Request{Date: "10/06/2025", StartTime: "09:00", DurationHours: 1}, kind: domain.KindInvalidTimeFormat},
		{name: "missing start", req: Request{Date: date, DurationHours: 1}, kind: domain.KindInvalidInput},
		{name: "bad start", req: Request{Date: date, StartTime: "9am", DurationHours: 1}, kind: domain.KindInvalidTimeFormat},
		{name: "zero duration", req: Request{Date: date, StartTime: "09:00"}, kind: domain.KindInvalidInput},
		{name: "crosses midnight", req: Request{Date: date, StartTime: "22:00", DurationHours: 3, Actor: domain.Admin()}, kind: domain.KindInvalidInput},
		{name: "client too long", req: Request{Date: date, StartTime: "09:00", DurationHours: 4, Actor: domain.Client("u1")}, kind: domain.KindInvalidInput},
		{name: "client block", req: Request{Date: date, StartTime: "09:00", DurationHours: 1, MarkUnavailable: true, Actor: domain.Client("u1")}, kind: domain.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := uc.Execute(context.Background(), &req)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

// No two persisted slots of a date ever overlap, whatever the interleaving.
func TestExecute_ConcurrentCreatesNeverOverlap(t *testing.T) {
	uc, store := newUseCase()
	rng := rand.New(rand.NewSource(42))

	requests := make([]Request, 200)
	for i := range requests {
		requests[i] = Request{
			Date:          date,
			StartTime:     types.TimeString(fmt.Sprintf("%02d:%02d", 6+rng.Intn(14), 30*rng.Intn(2))),
			DurationHours: 1 + rng.Intn(3),
			Actor:         domain.Admin(),
		}
	}

	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &req)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrOverlapsExisting)
			}
		}(requests[i])
	}
	wg.Wait()

	slots, err := store.Slots.ListByDate(context.Background(), date)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assertNoOverlap(t, slots)
}

func assertNoOverlap(t *testing.T, slots []*domain.Slot) {
	t.Helper()
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			aStart, aEnd, err := slots[i].Interval()
			require.NoError(t, err)
			bStart, bEnd, err := slots[j].Interval()
			require.NoError(t, err)
			assert.False(t, domain.Overlaps(aStart, aEnd, bStart, bEnd),
				"%s-%s overlaps %s-%s", slots[i].StartTime, slots[i].EndTime, slots[j].StartTime, slots[j].EndTime)
		}
	}
}

type slotRepoMock struct {
	mock.Mock
}

func (m *slotRepoMock) LockDate(ctx context.Context, d types.Date) error {
	return m.Called(ctx, d).Error(0)
}

func (m *slotRepoMock) ListByDate(ctx context.Context, d types.Date) ([]*domain.Slot, error) {
	args := m.Called(ctx, d)
	slots, _ := args.Get(0).([]*domain.Slot)
	return slots, args.Error(1)
}

func (m *slotRepoMock) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	args := m.Called(ctx, slot)
	created, _ := args.Get(0).(*domain.Slot)
	return created, args.Error(1)
}

type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	repo := &slotRepoMock{}
	repo.On("LockDate", mock.Anything, date).Return(nil)
	repo.On("ListByDate", mock.Anything, date).Return(nil, errors.New("connection reset"))

	uc := NewUseCase(repo, passThroughTx{}, nil, logger.Nop(), 3)

	_, err := uc.Execute(context.Background(), &Request{Date: date, StartTime: "09:00", DurationHours: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_InternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	repo := &slotRepoMock{}
	repo.On("LockDate", mock.Anything, date).Return(cause)

	uc := NewUseCase(repo, passThroughTx{}, nil, logger.Nop(), 3)

	_, err := uc.Execute(context.Background(), &Request{Date: date, StartTime: "09:00", DurationHours: 1})
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}
