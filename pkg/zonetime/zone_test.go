package zonetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khan47650/central-kitchen/pkg/types"
)

func TestZone_Instant(t *testing.T) {
	zone, err := Load(DefaultZone)
	require.NoError(t, err)

	instant, err := zone.Instant("2025-06-10", "14:00")
	require.NoError(t, err)

	// Phoenix stays on MST (UTC-7) all year.
	assert.Equal(t, time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC), instant.UTC())

	_, err = zone.Instant("2025-06-10", "25:00")
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)

	_, err = zone.Instant("10/06/2025", "10:00")
	assert.ErrorIs(t, err, types.ErrInvalidDateFormat)
}

func TestZone_NowUsesClock(t *testing.T) {
	zone, err := Load("")
	require.NoError(t, err)

	fixed := time.Date(2025, 6, 10, 21, 30, 0, 0, time.UTC)
	zone = zone.WithClock(func() time.Time { return fixed })

	now := zone.Now()
	assert.True(t, now.Equal(fixed))
	assert.Equal(t, "America/Phoenix", now.Location().String())
	assert.Equal(t, types.Date("2025-06-10"), zone.Today())
	assert.Equal(t, 14*60+30, zone.MinutesOfDay(now))
	assert.Equal(t, time.Tuesday, zone.Weekday(now))
}

func TestZone_TodayCrossesUTCMidnight(t *testing.T) {
	zone, err := Load(DefaultZone)
	require.NoError(t, err)

	// 03:00 UTC on the 11th is still the evening of the 10th in Phoenix.
	zone = zone.WithClock(func() time.Time { return time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC) })
	assert.Equal(t, types.Date("2025-06-10"), zone.Today())
}

func TestLoad_UnknownZone(t *testing.T) {
	_, err := Load("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownZone)
}
