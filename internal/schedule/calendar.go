package schedule

import "time"

// DayStatus is the render hint for one visible calendar day.
type DayStatus string

const (
	DayFree                DayStatus = "free"
	DayBlockingSelf        DayStatus = "blocking-self"
	DayBlockingReservation DayStatus = "blocking-other-reservation"
	DayBlockingMaintenance DayStatus = "blocking-maintenance"
)

// DayHint pairs a calendar day with its render hint. Booking is the blocking
// booking when the day is not free (nil for blocking-self days, where the
// blocker is the booking under edit itself).
type DayHint struct {
	Date    time.Time
	Status  DayStatus
	Booking *Booking
}

// MonthHints derives render hints for every day of the given month by probing
// the index. self, when non-nil, is the booking currently under edit (already
// excluded from the index); its own days render as blocking-self so the UI
// can show the held range distinctly.
func MonthHints(ix *AvailabilityIndex, self *Booking, year int, month time.Month) []DayHint {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, 0).Sub(first).Hours() / 24

	hints := make([]DayHint, 0, int(days))
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		hints = append(hints, dayHint(ix, self, d))
	}
	return hints
}

func dayHint(ix *AvailabilityIndex, self *Booking, day time.Time) DayHint {
	if self != nil && self.ContainsDay(day) {
		return DayHint{Date: day, Status: DayBlockingSelf}
	}

	blocking := ix.BlockingBookingForDate(day)
	if blocking == nil {
		return DayHint{Date: day, Status: DayFree}
	}

	status := DayBlockingReservation
	if blocking.Kind == KindMaintenance {
		status = DayBlockingMaintenance
	}
	return DayHint{Date: day, Status: status, Booking: blocking}
}
