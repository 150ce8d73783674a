package domain

import (
	"time"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// DeriveStatus computes the live status of table at now. now must already be in the kitchen zone.
// Both windows are inclusive at each end and the break window wins ties.
func DeriveStatus(table Timetable, now time.Time) ShopStatus {
	row, ok := table[WeekdayOf(now.Weekday())]
	if !ok || !row.Open || row.OpenTime.IsZero() {
		return StatusClose
	}

	minute := now.Hour()*60 + now.Minute()

	if row.Break && !row.BreakStart.IsZero() && !row.BreakEnd.IsZero() {
		if within(minute, row.BreakStart, row.BreakEnd) {
			return StatusBreak
		}
	}
	if within(minute, row.OpenTime, row.CloseTime) {
		return StatusOpen
	}
	return StatusClose
}

func within(minute int, from, to types.TimeString) bool {
	start, err := from.Minutes()
	if err != nil {
		return false
	}
	end, err := to.Minutes()
	if err != nil {
		return false
	}
	return minute >= start && minute <= end
}

// LockedRow is a timing row with its derived edit lock.
type LockedRow struct {
	TimingRow
	IsLockedForEdit bool
}

// ApplyEditLock marks each row locked once now reaches its openTime minus lead on the current day.
// Rows without an openTime are never locked. now must already be in the kitchen zone.
func ApplyEditLock(table Timetable, now time.Time, lead time.Duration) []LockedRow {
	minute := now.Hour()*60 + now.Minute()
	leadMinutes := int(lead / time.Minute)

	rows := table.Rows()
	out := make([]LockedRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, LockedRow{TimingRow: r, IsLockedForEdit: isLocked(r, minute, leadMinutes)})
	}
	return out
}

func isLocked(r TimingRow, minute, leadMinutes int) bool {
	open, err := r.OpenTime.Minutes()
	if err != nil {
		return false
	}
	// a negative lock time falls on the previous day and is already reached
	return minute >= open-leadMinutes
}

// MergeLocked keeps every row of previous that is locked at now and takes the rest from incoming.
func MergeLocked(previous, incoming Timetable, now time.Time, lead time.Duration) Timetable {
	merged := make(Timetable, len(Weekdays))
	for _, lr := range ApplyEditLock(previous, now, lead) {
		if lr.IsLockedForEdit {
			merged[lr.Day] = lr.TimingRow
			continue
		}
		if row, ok := incoming[lr.Day]; ok {
			merged[lr.Day] = row
		} else {
			merged[lr.Day] = ClosedRow(lr.Day)
		}
	}
	return merged
}

// ShopView is a shop as presented to readers: its rows with edit locks and the live status.
type ShopView struct {
	Shop   *Shop
	Rows   []LockedRow
	Status ShopStatus
}

// ViewShop derives the read model of shop at now.
func ViewShop(shop *Shop, now time.Time, lead time.Duration) ShopView {
	return ShopView{
		Shop:   shop,
		Rows:   ApplyEditLock(shop.Timings, now, lead),
		Status: DeriveStatus(shop.Timings, now),
	}
}
