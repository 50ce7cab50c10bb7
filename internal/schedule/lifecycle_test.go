package schedule

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		from, to    Status
		shouldAllow bool
	}{
		{"accept reservation", KindReservation, StatusPending, StatusActive, true},
		{"reject reservation", KindReservation, StatusPending, StatusCompleted, true},
		{"finish reservation", KindReservation, StatusActive, StatusCompleted, true},
		{"reactivate reservation", KindReservation, StatusCompleted, StatusPending, true},
		{"start maintenance", KindMaintenance, StatusPending, StatusActive, true},
		{"finish maintenance", KindMaintenance, StatusActive, StatusCompleted, true},
		{"reactivate maintenance", KindMaintenance, StatusCompleted, StatusPending, true},
		// Not in the allow-list.
		{"active back to pending", KindReservation, StatusActive, StatusPending, false},
		{"completed straight to active", KindReservation, StatusCompleted, StatusActive, false},
		{"pending to pending", KindReservation, StatusPending, StatusPending, false},
		// Maintenance has no rejection shortcut.
		{"maintenance pending to completed", KindMaintenance, StatusPending, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanTransition(tt.kind, tt.from, tt.to)
			if got != tt.shouldAllow {
				t.Errorf("transition %s -> %s (%s): expected allowed=%v, got %v",
					tt.from, tt.to, tt.kind, tt.shouldAllow, got)
			}
		})
	}
}

func TestIsReactivation(t *testing.T) {
	if !IsReactivation(StatusCompleted, StatusPending) {
		t.Error("completed -> pending must require an availability re-check")
	}
	if IsReactivation(StatusPending, StatusActive) {
		t.Error("pending -> active must not require an availability re-check")
	}
}

func TestValidStatusAndKind(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusActive, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidStatus("cancelled") {
		t.Error("unknown status must be invalid")
	}
	if !ValidKind(KindReservation) || !ValidKind(KindMaintenance) {
		t.Error("known kinds must be valid")
	}
	if ValidKind("rental") {
		t.Error("unknown kind must be invalid")
	}
}
