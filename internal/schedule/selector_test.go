package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPickOccupiedDayRejected(t *testing.T) {
	ix := BuildIndex(fixtureBookings(), vehicleX, "")
	sel := Selection{}

	next, res := Pick(ix, sel, date(2026, time.June, 3))
	require.Equal(t, OutcomeRejected, res.Outcome)
	require.Equal(t, ReasonDateOccupied, res.Reason)
	require.NotNil(t, res.Blocking)
	require.Equal(t, "res-active", res.Blocking.ID)
	// State is untouched.
	require.Equal(t, sel, next)
}

func TestPickAnchorThenCommit(t *testing.T) {
	ix := BuildIndex(fixtureBookings(), vehicleX, "")

	sel, res := Pick(ix, Selection{}, date(2026, time.August, 3))
	require.Equal(t, OutcomeAnchorSet, res.Outcome)
	require.NotNil(t, sel.Anchor)

	sel, res = Pick(ix, sel, date(2026, time.August, 7))
	require.Equal(t, OutcomeCommitted, res.Outcome)
	require.NotNil(t, res.Range)
	require.Equal(t, date(2026, time.August, 3), res.Range.Start)
	require.Equal(t, date(2026, time.August, 7), res.Range.End)
	require.Nil(t, sel.Anchor)
	require.NotNil(t, sel.Committed)
}

func TestPickReverseOrderSwaps(t *testing.T) {
	ix := BuildIndex(fixtureBookings(), vehicleX, "")

	forward := Selection{}
	forward, _ = Pick(ix, forward, date(2026, time.March, 5))
	_, fwdRes := Pick(ix, forward, date(2026, time.March, 10))

	backward := Selection{}
	backward, _ = Pick(ix, backward, date(2026, time.March, 10))
	_, bwdRes := Pick(ix, backward, date(2026, time.March, 5))

	require.Equal(t, OutcomeCommitted, fwdRes.Outcome)
	require.Equal(t, OutcomeCommitted, bwdRes.Outcome)
	require.Equal(t, *fwdRes.Range, *bwdRes.Range)
	require.Equal(t, date(2026, time.March, 5), bwdRes.Range.Start)
	require.Equal(t, date(2026, time.March, 10), bwdRes.Range.End)
}

func TestPickSameDayTwiceExtendsOneNight(t *testing.T) {
	ix := BuildIndex(nil, vehicleX, "")

	sel, _ := Pick(ix, Selection{}, date(2026, time.April, 14))
	_, res := Pick(ix, sel, date(2026, time.April, 14))

	require.Equal(t, OutcomeCommitted, res.Outcome)
	require.Equal(t, date(2026, time.April, 14), res.Range.Start)
	require.Equal(t, date(2026, time.April, 15), res.Range.End)
	require.True(t, res.Range.Start.Before(res.Range.End), "zero-length range must be impossible")
}

func TestPickRangeConflictAbandonsAnchor(t *testing.T) {
	// Maintenance window Jul 10-12; anchor Jul 8, then Jul 15 spans it.
	ix := BuildIndex(fixtureBookings(), vehicleX, "")

	sel, res := Pick(ix, Selection{}, date(2026, time.July, 8))
	require.Equal(t, OutcomeAnchorSet, res.Outcome)

	sel, res = Pick(ix, sel, date(2026, time.July, 15))
	require.Equal(t, OutcomeRejected, res.Outcome)
	require.Equal(t, ReasonRangeConflict, res.Reason)
	require.Equal(t, "mnt-pending", res.Blocking.ID)
	require.Nil(t, sel.Anchor, "anchor must be cleared after a range conflict")
	require.Nil(t, sel.Committed)
}

func TestPickRestartsAfterCommit(t *testing.T) {
	ix := BuildIndex(nil, vehicleX, "")
	sel := EditSelection(date(2026, time.May, 1), date(2026, time.May, 4))

	// A new pick on a committed selection discards it and anchors fresh.
	sel, res := Pick(ix, sel, date(2026, time.May, 20))
	require.Equal(t, OutcomeAnchorSet, res.Outcome)
	require.Nil(t, sel.Committed)
	require.Equal(t, date(2026, time.May, 20), *sel.Anchor)
}

func TestPickSelfExclusionWhileEditing(t *testing.T) {
	bookings := append(fixtureBookings(), Booking{
		ID:        "res-edit",
		VehicleID: vehicleX,
		Kind:      KindReservation,
		StartDate: date(2026, time.August, 1),
		EndDate:   date(2026, time.August, 4),
		Status:    StatusPending,
	})

	ix := BuildIndex(bookings, vehicleX, "res-edit")
	rs := NewRangeSelectorForEdit(ix, date(2026, time.August, 1), date(2026, time.August, 4))

	// Re-picking the booking's own range succeeds.
	res := rs.Pick(date(2026, time.August, 1))
	require.Equal(t, OutcomeAnchorSet, res.Outcome)
	res = rs.Pick(date(2026, time.August, 4))
	require.Equal(t, OutcomeCommitted, res.Outcome)

	// A range overlapping a different booking still fails.
	res = rs.Pick(date(2026, time.May, 30))
	require.Equal(t, OutcomeAnchorSet, res.Outcome)
	res = rs.Pick(date(2026, time.June, 8))
	require.Equal(t, OutcomeRejected, res.Outcome)
	require.Equal(t, ReasonRangeConflict, res.Reason)
	require.Equal(t, "res-active", res.Blocking.ID)
}

func TestCommittedNeverOverlaps(t *testing.T) {
	// Walk every anchor/close pair in a window around the fixtures and assert
	// the selector never commits a range the index reports a conflict for.
	ix := BuildIndex(fixtureBookings(), vehicleX, "")

	from := date(2026, time.May, 25)
	for a := 0; a < 50; a++ {
		for b := 0; b < 50; b++ {
			anchor := from.AddDate(0, 0, a)
			closing := from.AddDate(0, 0, b)

			sel, res := Pick(ix, Selection{}, anchor)
			if res.Outcome != OutcomeAnchorSet {
				continue
			}
			_, res = Pick(ix, sel, closing)
			if res.Outcome != OutcomeCommitted {
				continue
			}
			require.Nil(t, ix.Overlaps(res.Range.Start, res.Range.End),
				"committed range %v overlaps", *res.Range)
		}
	}
}
