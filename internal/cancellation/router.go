package cancellation

import (
	"cineseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCancellationRoutes(router *gin.RouterGroup, controller Controller) {
	holds := router.Group("/holds")
	{
		// Session-bound cancel
		authed := holds.Group("")
		authed.Use(middleware.RequireSession())
		authed.POST("/cancel", controller.CancelHold) // POST /api/v1/holds/cancel

		// Gateway calls this on disconnect, no user session attached
		holds.POST("/cancel-by-connection", controller.CancelHoldByConnection) // POST /api/v1/holds/cancel-by-connection
	}

	bookings := router.Group("/bookings")
	bookings.Use(middleware.RequireSession())
	{
		bookings.POST("/cancel", controller.CancelBooking) // POST /api/v1/bookings/cancel
	}
}
