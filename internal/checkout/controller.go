package checkout

import (
	"errors"
	"net/http"
	"strconv"

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

func (c *Controller) currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

// ListBookings handles GET /api/v1/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	bookings, total, err := c.service.GetUserBookings(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved", gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	}, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved", booking, nil)
}

// ProcessPayment handles POST /api/v1/bookings/:id/payment
func (c *Controller) ProcessPayment(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	var req ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.ConfirmPayment(ctx.Request.Context(), bookingID, userID, req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed, tickets issued", booking, nil)
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	if err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID); err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled, seats released", nil, nil)
}

func (c *Controller) respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, ErrNotBookingOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking belongs to another user", nil, nil)
	case errors.Is(err, ErrBookingNotPending):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is not pending payment", nil, nil)
	case errors.Is(err, ErrAlreadyCancelled):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
	case errors.Is(err, ErrPaymentNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment not found", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Booking operation failed", nil, err.Error())
	}
}
