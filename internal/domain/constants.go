package domain

// Scheduling defaults
const (
	DefaultMaxBookingHours = 3
	DefaultEditLockHours   = 2
	MinDurationHours       = 1
)

// AdminSentinel is the bookedBy value that identifies the administrator on the wire.
const AdminSentinel = "Admin"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
