package cancellation

import (
	"net/http"

	"cineseat/internal/shared/middleware"
	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CancelHold(c *gin.Context)
	CancelHoldByConnection(c *gin.Context)
	CancelBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CancelHold(c *gin.Context) {
	var req CancelHoldRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := middleware.SessionUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Session not established", nil, nil)
		return
	}

	result, err := ctrl.service.CancelHold(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Holds cancelled", result, nil)
}

func (ctrl *controller) CancelHoldByConnection(c *gin.Context) {
	var req CancelByConnectionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.CancelHoldByConnection(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Connection holds cancelled", result, nil)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := middleware.SessionUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Session not established", nil, nil)
		return
	}

	result, err := ctrl.service.CancelBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled", result, nil)
}
