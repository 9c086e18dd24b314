package confirmation

import (
	"cineseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupConfirmationRoutes(router *gin.RouterGroup, controller Controller) {
	holds := router.Group("/holds")
	holds.Use(middleware.RequireSession())
	{
		holds.POST("/confirm", controller.ConfirmSeats) // POST /api/v1/holds/confirm - Promote held seats to a booking
	}
}
