// Package schedule implements the vehicle occupancy core: an in-memory
// availability index over one vehicle's bookings, a two-click range selector,
// and the booking status lifecycle. It is pure and storage-agnostic; callers
// feed it a snapshot of bookings and rebuild it whenever that snapshot changes.
package schedule

import "time"

// Kind distinguishes the two collections that share a vehicle's calendar.
type Kind string

const (
	KindReservation Kind = "reservation"
	KindMaintenance Kind = "maintenance"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Blocking reports whether a booking in this status occupies its date range.
// Completed bookings do not block the calendar.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusActive
}

// Booking is the slice of a reservation or maintenance record the scheduler
// cares about. StartDate and EndDate are calendar days normalized to midnight
// UTC; StartDate < EndDate strictly.
type Booking struct {
	ID        string
	VehicleID string
	Kind      Kind
	Label     string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
}

// ContainsDay reports whether the booking's inclusive [StartDate, EndDate]
// day range covers the given day.
func (b Booking) ContainsDay(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(b.StartDate)) && !d.After(Day(b.EndDate))
}

// Day truncates a timestamp to its calendar day at midnight UTC.
// Time-of-day is irrelevant to vehicle occupancy.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
