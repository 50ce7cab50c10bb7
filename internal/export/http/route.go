package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/vehicles/:id/bookings/export", authMiddleware, h.ExportVehicleBookings)
}
