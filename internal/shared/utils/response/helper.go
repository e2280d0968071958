package response

import (
	"net/http"

	"busify/internal/shared/errs"

	"github.com/gin-gonic/gin"
)

// envelope is the structured shape used by middleware (rate limiting). The
// booking and ticket endpoints answer with the flat helpers below instead.
type envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Error writes the flat {"error": message} shape used by the public booking
// and ticket endpoints.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// ErrorFromErr maps the domain error taxonomy onto HTTP status codes and
// writes the flat error shape. Upstream failures are flattened to 500.
func ErrorFromErr(c *gin.Context, err error) {
	switch {
	case errs.IsValidation(err):
		Error(c, http.StatusBadRequest, err.Error())
	case errs.IsNotFound(err):
		Error(c, http.StatusNotFound, err.Error())
	case errs.IsConflict(err):
		Error(c, http.StatusConflict, err.Error())
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
}
