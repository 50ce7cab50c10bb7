package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/fleetyard/rental-backend/internal/booking/http"
)

func TestBookingConflictFlow(t *testing.T) {
	clearTables()

	staff := createTestUser(t, "staff@fleet.test", "pass")
	token := generateToken(t, staff)

	veh := createTestVehicle(t, "ABC-1234")
	otherVeh := createTestVehicle(t, "XYZ-9876")
	cli := createTestClient(t, "Maria Souza", "12345678900")

	var bookingID string

	t.Run("Auth required", func(t *testing.T) {
		w := executeRequest("GET", "/v1/bookings", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Create reservation", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-06-01",
			EndDate:   "2026-06-05",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, veh.ID, resp.Vehicle.ID)
		require.NotNil(t, resp.Client)
		assert.Equal(t, cli.ID, resp.Client.ID)
		bookingID = resp.ID
	})

	t.Run("Reservation requires a client", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			StartDate: "2026-09-01",
			EndDate:   "2026-09-03",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Overlapping range rejected", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-06-03",
			EndDate:   "2026-06-08",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Touching boundary day conflicts", func(t *testing.T) {
		// New range starts on the existing booking's return day.
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "maintenance",
			Label:     "oil change",
			StartDate: "2026-06-05",
			EndDate:   "2026-06-07",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Same range on another vehicle is fine", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: otherVeh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-06-01",
			EndDate:   "2026-06-05",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Calendar marks occupied days", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/v1/vehicles/%s/calendar?month=2026-06", veh.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp bookingHttp.CalendarResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Days, 30)

		byDate := map[string]bookingHttp.DayHintResponse{}
		for _, d := range resp.Days {
			byDate[d.Date] = d
		}
		assert.Equal(t, "blocking-other-reservation", byDate["2026-06-03"].Status)
		assert.Equal(t, "free", byDate["2026-06-10"].Status)
	})

	t.Run("Calendar excludes the booking under edit", func(t *testing.T) {
		path := fmt.Sprintf("/v1/vehicles/%s/calendar?month=2026-06&exclude_booking=%s", veh.ID, bookingID)
		w := executeRequest("GET", path, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.CalendarResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		for _, d := range resp.Days {
			if d.Date == "2026-06-03" {
				assert.Equal(t, "blocking-self", d.Status)
			}
		}
	})

	t.Run("Lifecycle: pending to active to completed", func(t *testing.T) {
		w := executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/status", bookingID),
			bookingHttp.TransitionRequest{Status: "active"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/status", bookingID),
			bookingHttp.TransitionRequest{Status: "completed"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("Completed booking no longer blocks", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "maintenance",
			Label:     "tire swap",
			StartDate: "2026-06-02",
			EndDate:   "2026-06-04",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Reactivation rejected when range was retaken", func(t *testing.T) {
		// The maintenance window above now occupies part of the completed
		// booking's stored range.
		w := executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/status", bookingID),
			bookingHttp.TransitionRequest{Status: "pending"}, token)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("Active cannot go back to pending", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-07-01",
			EndDate:   "2026-07-05",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		w = executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/status", resp.ID),
			bookingHttp.TransitionRequest{Status: "active"}, token)
		require.Equal(t, http.StatusOK, w.Code)

		w = executeRequest("POST", fmt.Sprintf("/v1/bookings/%s/status", resp.ID),
			bookingHttp.TransitionRequest{Status: "pending"}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Update range re-checks conflicts excluding self", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-08-01",
			EndDate:   "2026-08-05",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// Extending within its own stored range must not self-conflict.
		newEnd := "2026-08-07"
		w = executeRequest("PATCH", "/v1/bookings/"+resp.ID,
			bookingHttp.UpdateBookingRequest{EndDate: &newEnd}, token)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Moving onto the July reservation must conflict.
		newStart := "2026-07-03"
		w = executeRequest("PATCH", "/v1/bookings/"+resp.ID,
			bookingHttp.UpdateBookingRequest{StartDate: &newStart}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid range rejected", func(t *testing.T) {
		payload := bookingHttp.CreateBookingRequest{
			VehicleID: veh.ID,
			Kind:      "reservation",
			ClientID:  &cli.ID,
			StartDate: "2026-10-05",
			EndDate:   "2026-10-05",
		}
		w := executeRequest("POST", "/v1/bookings", payload, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Export returns a workbook", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/v1/vehicles/%s/bookings/export", veh.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		assert.NotEmpty(t, w.Body.Bytes())
	})
}
