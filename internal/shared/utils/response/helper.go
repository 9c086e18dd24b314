package response

import (
	"net/http"

	"cineseat/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error onto the HTTP surface. Conflicts
// carry the contested seat ids so the client can redraw exactly those
// seats.
func RespondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case apperrors.IsNotFound(err):
		RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case apperrors.IsConflict(err):
		RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, gin.H{
			"conflicting_seat_ids": apperrors.ConflictSeats(err),
		})
	case apperrors.IsTransient(err):
		RespondJSON(c, "error", http.StatusServiceUnavailable, "temporarily unable to process request, please retry", nil, nil)
	default:
		RespondJSON(c, "error", http.StatusInternalServerError, "internal server error", nil, nil)
	}
}
