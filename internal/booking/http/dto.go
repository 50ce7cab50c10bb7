package http

import (
	"time"

	"github.com/fleetyard/rental-backend/internal/booking"
	clientHttp "github.com/fleetyard/rental-backend/internal/client/http"
	"github.com/fleetyard/rental-backend/internal/pkg/request"
	"github.com/fleetyard/rental-backend/internal/schedule"
	vehicleHttp "github.com/fleetyard/rental-backend/internal/vehicle/http"
)

// dateLayout is the wire format for calendar days.
const dateLayout = "2006-01-02"

// monthLayout is the wire format for calendar month queries.
const monthLayout = "2006-01"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	VehicleID string `form:"vehicle_id" binding:"omitempty,uuid"`
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	Kind      string `form:"kind" binding:"omitempty,oneof=reservation maintenance"`
	Status    string `form:"status" binding:"omitempty,oneof=pending active completed"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	ID        string                 `json:"id"`
	Vehicle   vehicleHttp.VehicleTag `json:"vehicle"`
	Kind      string                 `json:"kind"`
	Client    *clientHttp.ClientTag  `json:"client,omitempty"`
	Label     string                 `json:"label"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		Vehicle:   vehicleHttp.VehicleTag{ID: b.VehicleID, Plate: b.VehiclePlate},
		Kind:      string(b.Kind),
		Label:     b.Label,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.ClientID != nil {
		tag := clientHttp.ClientTag{ID: *b.ClientID}
		if b.ClientName != nil {
			tag.Name = *b.ClientName
		}
		resp.Client = &tag
	}
	return resp
}

type CreateBookingRequest struct {
	VehicleID string  `json:"vehicle_id" binding:"required,uuid"`
	Kind      string  `json:"kind" binding:"required,oneof=reservation maintenance"`
	ClientID  *string `json:"client_id" binding:"omitempty,uuid"`
	Label     string  `json:"label"`
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type UpdateBookingRequest struct {
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Label     *string `json:"label"`
	ClientID  *string `json:"client_id" binding:"omitempty,uuid"`
}

// TransitionRequest carries the target lifecycle status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active completed"`
}

// CalendarRequest defines query parameters for the month calendar view.
type CalendarRequest struct {
	Month          string `form:"month" binding:"required,datetime=2006-01"`
	ExcludeBooking string `form:"exclude_booking" binding:"omitempty,uuid"`
}

// DayHintResponse is the render hint for one calendar day.
type DayHintResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Kind   string `json:"kind,omitempty"`
	Label  string `json:"label,omitempty"`
}

// CalendarResponse is the month view of one vehicle's occupancy.
type CalendarResponse struct {
	VehicleID string            `json:"vehicle_id"`
	Month     string            `json:"month"`
	Days      []DayHintResponse `json:"days"`
}

func newDayHintResponse(h schedule.DayHint) DayHintResponse {
	resp := DayHintResponse{
		Date:   h.Date.Format(dateLayout),
		Status: string(h.Status),
	}
	if h.Booking != nil {
		resp.Kind = string(h.Booking.Kind)
		resp.Label = h.Booking.Label
	}
	return resp
}
