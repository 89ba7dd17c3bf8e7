package auth

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configures all authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)
	}

	profile := rg.Group("/auth/profile")
	profile.Use(middleware.JWTAuth(cfg))
	{
		profile.GET("", controller.GetProfile)
		profile.PUT("", controller.UpdateProfile)
		profile.PUT("/avatar", controller.UpdateAvatar)
	}
}
