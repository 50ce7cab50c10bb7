package booking

import (
	"net/http"
	"time"

	"github.com/fleetyard/rental-backend/internal/pkg/apperror"
	"github.com/fleetyard/rental-backend/internal/schedule"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrVehicleNotFound   = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrClientNotFound    = apperror.New(http.StatusNotFound, "client not found")
	ErrClientRequired    = apperror.New(http.StatusBadRequest, "a reservation requires a client")
	ErrInvalidKind       = apperror.New(http.StatusBadRequest, "invalid booking kind")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidRange      = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrRangeConflict     = apperror.New(http.StatusConflict, "date range conflicts with an existing booking")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "status transition not allowed")
)

// Booking is a reservation or maintenance window occupying a date range on
// one vehicle. Start and end are calendar days (midnight UTC); start < end
// strictly. Only pending and active bookings block the calendar.
type Booking struct {
	ID           string
	VehicleID    string
	VehiclePlate string
	Kind         schedule.Kind
	ClientID     *string // reservations only
	ClientName   *string
	Label        string // maintenance type, or a free-form note
	StartDate    time.Time
	EndDate      time.Time
	Status       schedule.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Occupancy projects the booking onto the slice the scheduling core works
// with. The label falls back to the client name so conflict messages can
// identify the blocker.
func (b *Booking) Occupancy() schedule.Booking {
	label := b.Label
	if label == "" && b.ClientName != nil {
		label = *b.ClientName
	}
	return schedule.Booking{
		ID:        b.ID,
		VehicleID: b.VehicleID,
		Kind:      b.Kind,
		Label:     label,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status,
	}
}

// Filter defines parameters for listing bookings.
type Filter struct {
	VehicleID string
	ClientID  string
	Kind      string
	Status    string
	From      *time.Time // window intersection: bookings ending on/after this day
	To        *time.Time // window intersection: bookings starting on/before this day
	Page      int
	PageSize  int
}
