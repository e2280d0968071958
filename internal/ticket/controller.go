package ticket

import (
	"net/http"

	"busify/internal/shared/errs"
	"busify/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type verifyRequest struct {
	TicketCode string `json:"ticketCode" binding:"required"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// VerifyTicket handles POST /tickets/verify. Unknown codes return
// 404 {"error": "Ticket not found"}.
func (ctrl *Controller) VerifyTicket(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "ticketCode is required")
		return
	}

	result, err := ctrl.service.Verify(c.Request.Context(), req.TicketCode)
	if err != nil {
		if errs.IsNotFound(err) {
			response.Error(c, http.StatusNotFound, "Ticket not found")
			return
		}
		response.ErrorFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ScanTicket handles POST /tickets/scan, the boarding gate endpoint.
func (ctrl *Controller) ScanTicket(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "ticketCode is required")
		return
	}

	result, err := ctrl.service.Scan(c.Request.Context(), req.TicketCode)
	if err != nil {
		if errs.IsNotFound(err) {
			response.Error(c, http.StatusNotFound, "Ticket not found")
			return
		}
		response.ErrorFromErr(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
