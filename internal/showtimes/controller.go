package showtimes

import (
	"net/http"

	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateShowtime(c *gin.Context)
	GetShowtime(c *gin.Context)
	GetSeatMap(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateShowtime(c *gin.Context) {
	var req CreateShowtimeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.CreateShowtime(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (ctrl *controller) GetShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.GetShowtime(c.Request.Context(), showtimeID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), showtimeID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
