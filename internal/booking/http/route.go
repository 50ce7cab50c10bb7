package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/status", h.Transition)
		group.DELETE("/:id", h.Delete)
	}

	// The calendar view hangs off the vehicle path but is driven by booking
	// data, so it is registered here.
	g.GET("/vehicles/:id/calendar", authMiddleware, h.Calendar)
}
