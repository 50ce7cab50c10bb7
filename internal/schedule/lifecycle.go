package schedule

// Lifecycle rules for booking statuses. Transitions are an explicit
// allow-list; anything not listed is rejected.
//
//	pending   -> active     accepted / maintenance started
//	pending   -> completed  reservation rejected (reservations only)
//	active    -> completed  finished
//	completed -> pending    reactivated (manual undo)
//
// A completed booking stops blocking its range, so reactivation must be
// re-validated against the availability index by the caller before it is
// applied: other bookings may have claimed the window in the meantime.
var transitions = map[Status][]Status{
	StatusPending:   {StatusActive, StatusCompleted},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {StatusPending},
}

// CanTransition reports whether a booking of the given kind may move from
// one status to another. The pending -> completed shortcut models rejecting
// a reservation request; a maintenance window has no such path and must be
// started before it can complete.
func CanTransition(kind Kind, from, to Status) bool {
	if kind == KindMaintenance && from == StatusPending && to == StatusCompleted {
		return false
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsReactivation reports whether the transition brings a non-blocking booking
// back onto the calendar, which requires an availability re-check.
func IsReactivation(from, to Status) bool {
	return from == StatusCompleted && to == StatusPending
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// ValidKind reports whether k is one of the known booking kinds.
func ValidKind(k Kind) bool {
	return k == KindReservation || k == KindMaintenance
}
