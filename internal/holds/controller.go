package holds

import (
	"net/http"

	"cineseat/internal/shared/middleware"
	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller interface {
	HoldSeats(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{
		service:   service,
		validator: validator.New(),
	}
}

func (ctrl *controller) HoldSeats(c *gin.Context) {
	var req HoldSeatsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	userID, ok := middleware.SessionUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Session not established", nil, nil)
		return
	}
	connectionID, ok := middleware.SessionConnectionID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Session not established", nil, nil)
		return
	}

	hold, err := ctrl.service.HoldSeats(c.Request.Context(), userID, connectionID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats held successfully", hold, nil)
}
