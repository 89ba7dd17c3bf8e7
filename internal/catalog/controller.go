package catalog

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

// ListZones handles GET /api/v1/concerts/:id/zones
func (c *Controller) ListZones(ctx *gin.Context) {
	concertID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid concert ID", nil, err.Error())
		return
	}

	zones, err := c.service.ListZones(ctx.Request.Context(), concertID)
	if err != nil {
		if errors.Is(err, ErrConcertNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concert not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list zones", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Zones retrieved", zones, nil)
}

// ListSections handles GET /api/v1/concerts/:id/zones/:zoneId/sections
func (c *Controller) ListSections(ctx *gin.Context) {
	concertID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid concert ID", nil, err.Error())
		return
	}
	zoneID, err := uuid.Parse(ctx.Param("zoneId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid zone ID", nil, err.Error())
		return
	}

	sections, err := c.service.ListSections(ctx.Request.Context(), concertID, zoneID)
	if err != nil {
		switch {
		case errors.Is(err, ErrConcertNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concert not found", nil, nil)
		case errors.Is(err, ErrZoneNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Zone not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list sections", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Sections retrieved", sections, nil)
}

// ListSeats handles GET /api/v1/concerts/:id/zones/:zoneId/seats?section_id=...
func (c *Controller) ListSeats(ctx *gin.Context) {
	concertID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid concert ID", nil, err.Error())
		return
	}
	zoneID, err := uuid.Parse(ctx.Param("zoneId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid zone ID", nil, err.Error())
		return
	}

	var sectionID *uuid.UUID
	if raw := ctx.Query("section_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid section ID", nil, err.Error())
			return
		}
		sectionID = &parsed
	}

	seats, err := c.service.ListSeats(ctx.Request.Context(), concertID, zoneID, sectionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrConcertNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concert not found", nil, nil)
		case errors.Is(err, ErrZoneNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Zone not found", nil, nil)
		case errors.Is(err, ErrSectionNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Section not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list seats", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved", seats, nil)
}

// UpdateSeatStatus handles PATCH /api/v1/admin/seats/:id/status
func (c *Controller) UpdateSeatStatus(ctx *gin.Context) {
	var req UpdateSeatStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateSeatStatus(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to update seat status", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat status updated", seat, nil)
}

// UpdateZonePrice handles PATCH /api/v1/admin/zones/:id/price
func (c *Controller) UpdateZonePrice(ctx *gin.Context) {
	var req UpdateZonePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	zone, err := c.service.UpdateZonePrice(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrZoneNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Zone not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to update zone price", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Zone price updated", zone, nil)
}
