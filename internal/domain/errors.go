package domain

import (
	"errors"

	"github.com/khan47650/central-kitchen/pkg/types"
)

// Caller-visible failure kinds. Every layer wraps one of these so callers can branch with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTimeFormat   = errors.New("invalid time format")
	ErrOverlapsExisting    = errors.New("slot overlaps an existing slot")
	ErrOverlapsUnavailable = errors.New("slot overlaps an unavailable block")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrAlreadyBooked       = errors.New("slot is already booked")
	ErrSlotUnavailable     = errors.New("slot is unavailable")
	ErrPastSlot            = errors.New("slot start is in the past")
	ErrDeleteExistingFirst = errors.New("delete the existing booking first")
	ErrMissingActor        = errors.New("client identifier is required")
	ErrShopNotFound        = errors.New("shop not found")
	ErrInvalidRow          = errors.New("invalid timing row")
	ErrForbidden           = errors.New("forbidden")

	// ErrInternal marks infrastructure failures. It outranks any kind found deeper in the chain.
	ErrInternal = errors.New("internal error")
)

// Wire names of the kinds.
const (
	KindInvalidInput        = "InvalidInput"
	KindInvalidTimeFormat   = "InvalidTimeFormat"
	KindOverlapsExisting    = "OverlapsExisting"
	KindOverlapsUnavailable = "OverlapsUnavailable"
	KindSlotNotFound        = "SlotNotFound"
	KindAlreadyBooked       = "AlreadyBooked"
	KindSlotUnavailable     = "SlotUnavailable"
	KindPastSlot            = "PastSlot"
	KindDeleteExistingFirst = "DeleteExistingFirst"
	KindMissingActor        = "MissingActor"
	KindShopNotFound        = "ShopNotFound"
	KindInvalidRow          = "InvalidRow"
	KindForbidden           = "Forbidden"
	KindInternal            = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	// first match wins
	{ErrInternal, KindInternal},
	{ErrOverlapsUnavailable, KindOverlapsUnavailable},
	{ErrOverlapsExisting, KindOverlapsExisting},
	{ErrDeleteExistingFirst, KindDeleteExistingFirst},
	{ErrSlotNotFound, KindSlotNotFound},
	{ErrAlreadyBooked, KindAlreadyBooked},
	{ErrSlotUnavailable, KindSlotUnavailable},
	{ErrPastSlot, KindPastSlot},
	{ErrMissingActor, KindMissingActor},
	{ErrShopNotFound, KindShopNotFound},
	{ErrInvalidRow, KindInvalidRow},
	{ErrForbidden, KindForbidden},
	{ErrInvalidTimeFormat, KindInvalidTimeFormat},
	{types.ErrInvalidTimeFormat, KindInvalidTimeFormat},
	{types.ErrInvalidDateFormat, KindInvalidTimeFormat},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf returns the wire kind of err, "" for nil and KindInternal for anything unrecognised.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
