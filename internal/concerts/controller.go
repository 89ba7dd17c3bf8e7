package concerts

import (
	"errors"
	"net/http"
	"strconv"

	"concertly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListConcerts handles GET /api/v1/concerts
func (c *Controller) ListConcerts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	concerts, total, err := c.service.ListConcerts(ctx.Request.Context(), limit, offset)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list concerts", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Concerts retrieved", gin.H{
		"concerts": concerts,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	}, nil)
}

// GetConcert handles GET /api/v1/concerts/:id
func (c *Controller) GetConcert(ctx *gin.Context) {
	concert, err := c.service.GetConcert(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrConcertNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Concert not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to get concert", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Concert retrieved", concert, nil)
}

// CreateConcert handles POST /api/v1/admin/concerts
func (c *Controller) CreateConcert(ctx *gin.Context) {
	var req CreateConcertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	concert, err := c.service.CreateConcert(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create concert", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Concert created", concert, nil)
}

// CreateBand handles POST /api/v1/admin/bands
func (c *Controller) CreateBand(ctx *gin.Context) {
	var req CreateBandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	band, err := c.service.CreateBand(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create band", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Band created", band, nil)
}

// CreateSchedule handles POST /api/v1/admin/schedules
func (c *Controller) CreateSchedule(ctx *gin.Context) {
	var req CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	schedule, err := c.service.CreateSchedule(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create schedule", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Schedule created", schedule, nil)
}

// DeleteConcert handles DELETE /api/v1/admin/concerts/:id
func (c *Controller) DeleteConcert(ctx *gin.Context) {
	if err := c.service.DeleteConcert(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete concert", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Concert deleted", nil, nil)
}
