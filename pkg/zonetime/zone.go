// Package zonetime binds wall-clock dates and times to a single fixed IANA zone.
package zonetime

import (
	"errors"
	"fmt"
	"time"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// DefaultZone is the deployment zone of the kitchen.
const DefaultZone = "America/Phoenix"

var ErrUnknownZone = errors.New("zonetime: unknown time zone")

// Clock returns the current instant.
type Clock func() time.Time

// Zone converts (date, HH:MM) pairs into instants and reports "now" in one location.
type Zone struct {
	loc   *time.Location
	clock Clock
}

// Load resolves name via the tz database.
func Load(name string) (*Zone, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownZone, name, err)
	}
	return &Zone{loc: loc, clock: time.Now}, nil
}

// New wraps an already resolved location.
func New(loc *time.Location, clock Clock) *Zone {
	if clock == nil {
		clock = time.Now
	}
	return &Zone{loc: loc, clock: clock}
}

// WithClock returns a copy of z that reads the current instant from clock.
func (z *Zone) WithClock(clock Clock) *Zone {
	return New(z.loc, clock)
}

// Location returns the bound location.
func (z *Zone) Location() *time.Location {
	return z.loc
}

// Now returns the current instant expressed in the zone.
func (z *Zone) Now() time.Time {
	return z.clock().In(z.loc)
}

// Today returns the current calendar date in the zone.
func (z *Zone) Today() types.Date {
	return types.NewDate(z.Now())
}

// Instant builds the zoned instant of wall-clock t on date d.
func (z *Zone) Instant(d types.Date, t types.TimeString) (time.Time, error) {
	year, month, day, err := d.YMD()
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := t.Clock()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, hour, minute, 0, 0, z.loc), nil
}

// MinutesOfDay returns minutes since local midnight for instant now.
func (z *Zone) MinutesOfDay(now time.Time) int {
	local := now.In(z.loc)
	return local.Hour()*60 + local.Minute()
}

// Weekday returns the local weekday of instant now.
func (z *Zone) Weekday(now time.Time) time.Weekday {
	return now.In(z.loc).Weekday()
}
