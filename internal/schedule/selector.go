package schedule

import "time"

// DateRange is a committed booking window on day granularity, inclusive of
// both the pickup and return day. Start < End strictly; a same-day selection
// is extended to one night.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Selection is the interaction state of an in-progress two-click range
// selection. It is a plain serializable value: Pick takes a Selection and
// returns the next one, so the caller owns persistence of the state between
// events (e.g. round-tripping it through the UI).
type Selection struct {
	Anchor    *time.Time `json:"anchor,omitempty"`
	Committed *DateRange `json:"committed,omitempty"`
}

// EditSelection seeds a selection from an existing booking's stored range,
// the initial state when a staff user opens a booking for editing.
func EditSelection(start, end time.Time) Selection {
	return Selection{Committed: &DateRange{Start: Day(start), End: Day(end)}}
}

// PickOutcome classifies the result of a single pick event.
type PickOutcome string

const (
	OutcomeAnchorSet PickOutcome = "anchor-set"
	OutcomeCommitted PickOutcome = "committed"
	OutcomeRejected  PickOutcome = "rejected"
)

// RejectReason explains a rejected pick.
type RejectReason string

const (
	// ReasonDateOccupied: the picked day itself is inside a blocking booking.
	ReasonDateOccupied RejectReason = "date-occupied"
	// ReasonRangeConflict: the day is free but the full candidate range
	// spans a blocking booking.
	ReasonRangeConflict RejectReason = "range-conflict"
)

// PickResult is what a single pick event produced. Blocking is set on
// rejections so the caller can tell the user what is in the way.
type PickResult struct {
	Outcome  PickOutcome
	Range    *DateRange
	Reason   RejectReason
	Blocking *Booking
}

// Pick feeds one date-pick event into the selection state machine.
//
// A pick on an occupied day is rejected outright and leaves the selection
// untouched. The first pick on a free day anchors the range (an existing
// committed range is discarded: selecting again always starts over). The
// second pick closes the range; out-of-order picks are swapped rather than
// rejected, and picking the anchor day again extends the range by one day so
// a zero-length booking can never be committed. The closed range is checked
// against the index as a whole; on conflict the anchor is abandoned and the
// user starts over.
//
// Whenever Pick returns OutcomeCommitted the range is conflict-free against
// every booking the index was built from. Conflicts introduced by concurrent
// editors after the snapshot was taken are caught by the authoritative
// re-check at save time.
func Pick(ix *AvailabilityIndex, sel Selection, date time.Time) (Selection, PickResult) {
	day := Day(date)

	if blocking := ix.BlockingBookingForDate(day); blocking != nil {
		return sel, PickResult{
			Outcome:  OutcomeRejected,
			Reason:   ReasonDateOccupied,
			Blocking: blocking,
		}
	}

	// First click, or restart after a committed range.
	if sel.Anchor == nil {
		next := Selection{Anchor: &day}
		return next, PickResult{Outcome: OutcomeAnchorSet}
	}

	// Second click: close the range.
	start, end := Day(*sel.Anchor), day
	if end.Before(start) {
		start, end = end, start
	}
	if start.Equal(end) {
		// Minimum one-night booking.
		end = start.AddDate(0, 0, 1)
	}

	if blocking := ix.Overlaps(start, end); blocking != nil {
		return Selection{}, PickResult{
			Outcome:  OutcomeRejected,
			Reason:   ReasonRangeConflict,
			Blocking: blocking,
		}
	}

	committed := DateRange{Start: start, End: end}
	return Selection{Committed: &committed}, PickResult{
		Outcome: OutcomeCommitted,
		Range:   &committed,
	}
}

// RangeSelector is a small stateful wrapper over Pick for callers that drive
// a whole edit session in-process.
type RangeSelector struct {
	index *AvailabilityIndex
	sel   Selection
}

// NewRangeSelector starts a fresh selection session over the given index.
func NewRangeSelector(ix *AvailabilityIndex) *RangeSelector {
	return &RangeSelector{index: ix}
}

// NewRangeSelectorForEdit starts a session seeded with the edited booking's
// current range.
func NewRangeSelectorForEdit(ix *AvailabilityIndex, start, end time.Time) *RangeSelector {
	return &RangeSelector{index: ix, sel: EditSelection(start, end)}
}

// Pick applies one pick event and advances the held selection.
func (rs *RangeSelector) Pick(date time.Time) PickResult {
	next, res := Pick(rs.index, rs.sel, date)
	rs.sel = next
	return res
}

// Selection returns the current selection state.
func (rs *RangeSelector) Selection() Selection {
	return rs.sel
}
