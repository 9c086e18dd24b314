package audit

import (
	"github.com/gin-gonic/gin"
)

func SetupAuditRoutes(router *gin.RouterGroup, controller Controller) {
	showtimes := router.Group("/showtimes")
	{
		showtimes.GET("/:showtimeId/seats/:seatId/history", controller.GetSeatHistory) // GET /api/v1/showtimes/:showtimeId/seats/:seatId/history - Transition trail
	}
}
