package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetyard/rental-backend/internal/booking"
	"github.com/fleetyard/rental-backend/internal/export"
	"github.com/fleetyard/rental-backend/internal/pkg/request"
	"github.com/fleetyard/rental-backend/internal/pkg/response"
	"github.com/fleetyard/rental-backend/internal/vehicle"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	bookingService booking.Service
	vehService     vehicle.Service
}

func NewHandler(bookingService booking.Service, vehService vehicle.Service) *Handler {
	return &Handler{
		bookingService: bookingService,
		vehService:     vehService,
	}
}

// ExportVehicleBookings streams the full booking history of one vehicle as
// an XLSX workbook.
func (h *Handler) ExportVehicleBookings(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	v, err := h.vehService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, _, err := h.bookingService.List(c.Request.Context(), booking.Filter{
		VehicleID: uri.ID,
		Page:      1,
		PageSize:  1000,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, bookings); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", v.Plate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
