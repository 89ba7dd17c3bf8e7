package auth

import (
	"errors"
	"net/http"

	"concertly/internal/shared/utils/response"
	"concertly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Register handles POST /api/v1/auth/register
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Email already registered", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Registration failed", nil, err.Error())
		return
	}

	logger.GetDefault().LogAuthSuccess(ctx.Request.Context(), resp.User.ID, "register")
	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

// Login handles POST /api/v1/auth/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Login failed", nil, err.Error())
		return
	}

	logger.GetDefault().LogAuthSuccess(ctx.Request.Context(), resp.User.ID, "login")
	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	pair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed", pair, nil)
}

// GetProfile handles GET /api/v1/auth/profile
func (c *Controller) GetProfile(ctx *gin.Context) {
	userID := ctx.GetString("user_id")

	profile, err := c.service.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile retrieved", profile, nil)
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (c *Controller) UpdateProfile(ctx *gin.Context) {
	userID := ctx.GetString("user_id")

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	profile, err := c.service.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Email already in use", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Profile update failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile updated", profile, nil)
}

// UpdateAvatar handles PUT /api/v1/auth/profile/avatar
func (c *Controller) UpdateAvatar(ctx *gin.Context) {
	userID := ctx.GetString("user_id")

	var req UpdateAvatarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	profile, err := c.service.UpdateAvatar(ctx.Request.Context(), userID, req.AvatarURL)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Avatar update failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Avatar updated", profile, nil)
}
