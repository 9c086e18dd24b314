package holds

import (
	"cineseat/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(router *gin.RouterGroup, controller Controller) {
	holds := router.Group("/holds")
	holds.Use(middleware.RequireSession())
	{
		holds.POST("", controller.HoldSeats) // POST /api/v1/holds - Place or renew a batch hold
	}
}
