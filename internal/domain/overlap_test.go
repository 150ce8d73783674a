package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/pkg/types"
)

func minutes(t *testing.T, ts types.TimeString) int {
	t.Helper()
	m, err := ts.Minutes()
	require.NoError(t, err)
	return m
}

func TestOverlaps_HalfOpen(t *testing.T) {
	existStart, existEnd := minutes(t, "08:00"), minutes(t, "10:00")

	assert.False(t, Overlaps(minutes(t, "10:00"), minutes(t, "11:00"), existStart, existEnd), "touching after")
	assert.False(t, Overlaps(minutes(t, "07:00"), minutes(t, "08:00"), existStart, existEnd), "touching before")
	assert.True(t, Overlaps(minutes(t, "09:59"), minutes(t, "10:01"), existStart, existEnd))
	assert.True(t, Overlaps(minutes(t, "08:30"), minutes(t, "09:00"), existStart, existEnd), "contained")
	assert.True(t, Overlaps(minutes(t, "07:00"), minutes(t, "11:00"), existStart, existEnd), "containing")
}

func TestFindConflict(t *testing.T) {
	slots := []*Slot{
		{ID: "b", Date: "2025-06-10", StartTime: "12:00", EndTime: "13:00", State: SlotBlocked, Occupant: Admin()},
		{ID: "a", Date: "2025-06-10", StartTime: "08:00", EndTime: "10:00", State: SlotFree},
		{ID: "c", Date: "2025-06-11", StartTime: "09:00", EndTime: "10:00", State: SlotFree},
	}

	conflict, err := FindConflict(slots, "2025-06-10", "10:00", "12:00", "")
	require.NoError(t, err)
	assert.Nil(t, conflict)

	conflict, err = FindConflict(slots, "2025-06-10", "09:00", "12:30", "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "a", conflict.ID, "earliest conflict first")

	conflict, err = FindConflict(slots, "2025-06-10", "09:00", "12:30", "a")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "b", conflict.ID)

	conflict, err = FindConflict(slots, "2025-06-12", "09:00", "10:00", "")
	require.NoError(t, err)
	assert.Nil(t, conflict, "other dates are ignored")

	_, err = FindConflict(slots, "2025-06-10", "9am", "10:00", "")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestEndTime(t *testing.T) {
	end, err := EndTime("09:00", 2)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("11:00"), end)

	_, err = EndTime("23:00", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = EndTime("09:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = EndTime("9:00", 1)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestSlot_Validate(t *testing.T) {
	free := &Slot{Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00", State: SlotFree}
	require.NoError(t, free.Validate())

	booked := *free
	booked.Book(Client("u1"), "11:00")
	require.NoError(t, booked.Validate())
	assert.Equal(t, "u1", booked.Occupant.String())

	blocked := *free
	blocked.Block("10:00")
	require.NoError(t, blocked.Validate())
	assert.Equal(t, AdminSentinel, blocked.Occupant.String())

	illegal := blocked
	illegal.Occupant = Client("u1")
	assert.ErrorIs(t, illegal.Validate(), ErrInvalidInput)

	backwards := *free
	backwards.EndTime = "08:00"
	assert.ErrorIs(t, backwards.Validate(), ErrInvalidInput)
}

func TestParseActor(t *testing.T) {
	a, err := ParseActor("admin", "")
	require.NoError(t, err)
	assert.True(t, a.IsAdmin())

	a, err = ParseActor("client", "u7")
	require.NoError(t, err)
	assert.Equal(t, "u7", a.ClientID())

	_, err = ParseActor("client", "")
	assert.ErrorIs(t, err, ErrMissingActor)

	_, err = ParseActor("root", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.True(t, Client("").IsZero())
}

func TestKindOfSentinels(t *testing.T) {
	assert.Equal(t, "", KindOf(nil))
	assert.Equal(t, KindPastSlot, KindOf(ErrPastSlot))
	assert.Equal(t, KindInvalidTimeFormat, KindOf(types.ErrInvalidDateFormat))
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
}
