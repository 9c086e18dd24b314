package confirmation

import (
	"net/http"

	"cineseat/internal/shared/middleware"
	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	ConfirmSeats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ConfirmSeats(c *gin.Context) {
	var req ConfirmSeatsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := middleware.SessionUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Session not established", nil, nil)
		return
	}

	confirmation, err := ctrl.service.ConfirmSeats(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats confirmed successfully", confirmation, nil)
}
