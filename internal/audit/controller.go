package audit

import (
	"net/http"

	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetSeatHistory(c *gin.Context)
}

type controller struct {
	recorder Recorder
}

func NewController(recorder Recorder) Controller {
	return &controller{recorder: recorder}
}

func (ctrl *controller) GetSeatHistory(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}
	seatID, err := uuid.Parse(c.Param("seatId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid seat ID", nil, err.Error())
		return
	}

	history, err := ctrl.recorder.ListBySchedule(c.Request.Context(), seatID, showtimeID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat history retrieved successfully", history, nil)
}
