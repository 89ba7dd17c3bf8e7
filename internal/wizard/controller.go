package wizard

import (
	"errors"
	"net/http"

	"concertly/internal/catalog"
	"concertly/internal/shared/utils/response"
	"concertly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	manager *Manager
	logger  *logger.Logger
}

func NewController(manager *Manager) *Controller {
	return &Controller{
		manager: manager,
		logger:  logger.GetDefault(),
	}
}

func (c *Controller) currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

func (c *Controller) session(ctx *gin.Context) (*Session, uuid.UUID, bool) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return nil, uuid.Nil, false
	}
	session, err := c.manager.Get(userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No active selection session", nil, nil)
		return nil, uuid.Nil, false
	}
	return session, userID, true
}

// StartSelection handles POST /api/v1/selection/start
func (c *Controller) StartSelection(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}

	var req StartSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	concertID, _ := uuid.Parse(req.ConcertID)

	session, err := c.manager.Start(ctx.Request.Context(), userID, concertID)
	if err != nil {
		if errors.Is(err, catalog.ErrConcertNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concert not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Failed to load zones", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Selection started", session.Snapshot(), nil)
}

// GetSelection handles GET /api/v1/selection
func (c *Controller) GetSelection(ctx *gin.Context) {
	session, _, ok := c.session(ctx)
	if !ok {
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection state", session.Snapshot(), nil)
}

// SelectZone handles POST /api/v1/selection/zone
func (c *Controller) SelectZone(ctx *gin.Context) {
	session, _, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SelectZoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	zoneID, _ := uuid.Parse(req.ZoneID)

	if err := session.SelectZone(ctx.Request.Context(), zoneID); err != nil {
		if errors.Is(err, ErrInvalidZone) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Zone is not in the loaded zone list", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Failed to load zone data", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Zone selected", session.Snapshot(), nil)
}

// SelectSection handles POST /api/v1/selection/section
func (c *Controller) SelectSection(ctx *gin.Context) {
	session, _, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SelectSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	sectionID, _ := uuid.Parse(req.SectionID)

	if err := session.SelectSection(ctx.Request.Context(), sectionID); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStage):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Pick a zone before a section", nil, nil)
		case errors.Is(err, ErrInvalidSection):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Section is not in the loaded section list", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusBadGateway, "Failed to load seats", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Section selected", session.Snapshot(), nil)
}

// ToggleSeat handles POST /api/v1/selection/seats/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	session, _, ok := c.session(ctx)
	if !ok {
		return
	}

	var req ToggleSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	seatID, _ := uuid.Parse(req.SeatID)

	if err := session.ToggleSeat(seatID); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStage):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Pick a section before toggling seats", nil, nil)
		case errors.Is(err, ErrInvalidSeat):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is not in the loaded seat list", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to toggle seat", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat toggled", session.Snapshot(), nil)
}

// GoBack handles POST /api/v1/selection/back
func (c *Controller) GoBack(ctx *gin.Context) {
	session, _, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := session.Back(ctx.Request.Context()); err != nil {
		if errors.Is(err, ErrInvalidStage) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Already at the first stage", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Failed to reload stage data", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Went back one stage", session.Snapshot(), nil)
}

// Submit handles POST /api/v1/selection/submit
func (c *Controller) Submit(ctx *gin.Context) {
	session, userID, ok := c.session(ctx)
	if !ok {
		return
	}

	bookingID, total, err := session.Submit(ctx.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySelection):
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Select at least one seat before submitting", nil, nil)
		case errors.Is(err, ErrInvalidStage):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Selection is not at the seat stage", nil, nil)
		default:
			var conflict SeatConflictError
			if errors.As(err, &conflict) {
				response.RespondJSON(ctx, "error", http.StatusConflict, "Some seats were just booked by someone else", gin.H{
					"conflicting_seat_ids": conflict.ConflictingSeatIDs(),
					"selection":            session.Snapshot(),
				}, nil)
				return
			}
			response.RespondJSON(ctx, "error", http.StatusBadGateway, "Checkout failed", nil, err.Error())
		}
		return
	}

	view := session.Snapshot()
	c.logger.LogSelectionSubmitted(ctx.Request.Context(), view.ConcertID.String(), userID.String(), len(view.SelectedSeats), total)

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created", gin.H{
		"booking_id": bookingID,
		"total":      total,
		"selection":  view,
	}, nil)
}

// EndSelection handles DELETE /api/v1/selection
func (c *Controller) EndSelection(ctx *gin.Context) {
	userID, ok := c.currentUser(ctx)
	if !ok {
		return
	}
	c.manager.End(userID)
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection ended", nil, nil)
}
