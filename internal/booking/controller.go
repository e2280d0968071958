package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"busify/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /bookings.
func (ctrl *Controller) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	result, err := ctrl.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(result))
}

// GetBooking handles GET /bookings/:id.
func (ctrl *Controller) GetBooking(c *gin.Context) {
	b, err := ctrl.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /bookings/:id/cancel.
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	b, err := ctrl.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// bindingErrorMessage turns binding failures into field-level messages
// instead of validator's struct-namespace dump.
func bindingErrorMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return "invalid request body"
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
