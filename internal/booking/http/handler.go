package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetyard/rental-backend/internal/booking"
	"github.com/fleetyard/rental-backend/internal/pkg/request"
	"github.com/fleetyard/rental-backend/internal/pkg/response"
	"github.com/fleetyard/rental-backend/internal/schedule"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		VehicleID: req.VehicleID,
		ClientID:  req.ClientID,
		Kind:      req.Kind,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.From != "" {
		t, _ := time.Parse(dateLayout, req.From)
		filter.From = &t
	}
	if req.To != "" {
		t, _ := time.Parse(dateLayout, req.To)
		filter.To = &t
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		VehicleID: req.VehicleID,
		Kind:      schedule.Kind(req.Kind),
		ClientID:  req.ClientID,
		Label:     req.Label,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := booking.UpdateRequest{
		Label:    req.Label,
		ClientID: req.ClientID,
	}
	if req.StartDate != nil {
		t, _ := time.Parse(dateLayout, *req.StartDate)
		upd.StartDate = &t
	}
	if req.EndDate != nil {
		t, _ := time.Parse(dateLayout, *req.EndDate)
		upd.EndDate = &t
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, upd)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Transition(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Transition(c.Request.Context(), uri.ID, schedule.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Calendar returns per-day occupancy hints for one vehicle's month.
func (h *Handler) Calendar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	monthStart, _ := time.Parse(monthLayout, req.Month)

	hints, err := h.service.CalendarMonth(
		c.Request.Context(),
		uri.ID,
		monthStart.Year(),
		monthStart.Month(),
		req.ExcludeBooking,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	days := make([]DayHintResponse, len(hints))
	for i, hint := range hints {
		days[i] = newDayHintResponse(hint)
	}

	c.JSON(http.StatusOK, CalendarResponse{
		VehicleID: uri.ID,
		Month:     req.Month,
		Days:      days,
	})
}
