package showtimes

import (
	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(router *gin.RouterGroup, controller Controller) {
	showtimes := router.Group("/showtimes")
	{
		showtimes.POST("", controller.CreateShowtime)              // POST /api/v1/showtimes - Create showtime with seat map
		showtimes.GET("/:showtimeId", controller.GetShowtime)      // GET /api/v1/showtimes/:showtimeId - Showtime details
		showtimes.GET("/:showtimeId/seats", controller.GetSeatMap) // GET /api/v1/showtimes/:showtimeId/seats - Live availability
	}
}
