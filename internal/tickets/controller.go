package tickets

import (
	"errors"
	"net/http"

	"concertly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListMyTickets handles GET /api/v1/tickets
func (c *Controller) ListMyTickets(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return
	}

	tickets, err := c.service.GetUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list tickets", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets retrieved", tickets, nil)
}

// ListBookingTickets handles GET /api/v1/bookings/:id/tickets
func (c *Controller) ListBookingTickets(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	tickets, err := c.service.GetBookingTickets(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		if errors.Is(err, ErrNotTicketOwner) {
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Tickets belong to another user", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list tickets", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets retrieved", tickets, nil)
}

// ValidateTicket handles POST /api/v1/admin/tickets/validate
func (c *Controller) ValidateTicket(ctx *gin.Context) {
	var req ValidateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	ticket, err := c.service.ValidateTicket(ctx.Request.Context(), req.TicketCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Ticket not found", nil, nil)
		case errors.Is(err, ErrTicketUsed):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Ticket already used", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to validate ticket", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket valid, marked as used", ticket, nil)
}
