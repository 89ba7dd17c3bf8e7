package checkout

import (
	"concertly/internal/shared/config"
	"concertly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures booking and payment routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(cfg))
	{
		bookings.GET("", controller.ListBookings)
		bookings.GET("/:id", controller.GetBooking)
		bookings.POST("/:id/payment", controller.ProcessPayment)
		bookings.DELETE("/:id", controller.CancelBooking)
	}
}
