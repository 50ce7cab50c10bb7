package schedule

import (
	"sort"
	"time"
)

// AvailabilityIndex answers occupancy queries for one vehicle over a snapshot
// of its bookings. It is a pure query object: it holds the filtered snapshot
// taken at build time and must be rebuilt after the underlying booking list
// changes (e.g. after a successful save).
type AvailabilityIndex struct {
	bookings []Booking
}

// BuildIndex filters the snapshot down to blocking bookings of the given
// vehicle and indexes them. excludeBookingID drops the booking currently
// being edited so it cannot conflict with itself; pass "" when creating.
func BuildIndex(bookings []Booking, vehicleID, excludeBookingID string) *AvailabilityIndex {
	kept := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.VehicleID != vehicleID {
			continue
		}
		if !b.Status.Blocking() {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		kept = append(kept, b)
	}

	// Deterministic probe order: kind, then start date.
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Kind != kept[j].Kind {
			return kept[i].Kind < kept[j].Kind
		}
		return kept[i].StartDate.Before(kept[j].StartDate)
	})

	return &AvailabilityIndex{bookings: kept}
}

// BlockingBookingForDate returns the first indexed booking whose inclusive
// day range contains the given day, or nil if the day is free.
func (ix *AvailabilityIndex) BlockingBookingForDate(day time.Time) *Booking {
	for i := range ix.bookings {
		if ix.bookings[i].ContainsDay(day) {
			b := ix.bookings[i]
			return &b
		}
	}
	return nil
}

// Overlaps returns the first indexed booking whose day range intersects the
// candidate [start, end] range, or nil if the range is free. Both intervals
// are treated as inclusive on both ends: a range that merely touches an
// existing booking's boundary day conflicts with it.
func (ix *AvailabilityIndex) Overlaps(start, end time.Time) *Booking {
	s, e := Day(start), Day(end)
	for i := range ix.bookings {
		bs, be := Day(ix.bookings[i].StartDate), Day(ix.bookings[i].EndDate)
		if !s.After(be) && !e.Before(bs) {
			b := ix.bookings[i]
			return &b
		}
	}
	return nil
}

// Len returns the number of blocking bookings held by the index.
func (ix *AvailabilityIndex) Len() int {
	return len(ix.bookings)
}
