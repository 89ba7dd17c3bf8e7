// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"concertly/internal/auth"
	"concertly/internal/catalog"
	"concertly/internal/checkout"
	"concertly/internal/concerts"
	"concertly/internal/notifications"
	"concertly/internal/shared/config"
	"concertly/internal/shared/database"
	"concertly/internal/tickets"
	"concertly/internal/wizard"
	"concertly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	cacheService  cache.Service
	wizardManager *wizard.Manager
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalog before the wizard: the selection sessions read through
		// the catalog service.
		catalogService := r.setupCatalogRoutes(api)
		r.setupConcertRoutes(api)

		checkoutService, ticketService := r.setupBookingRoutes(api)
		r.setupTicketRoutes(api, ticketService)
		r.setupSelectionRoutes(api, catalogService, checkoutService)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "concertly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "concertly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController, r.config)
}

func (r *Router) setupConcertRoutes(rg *gin.RouterGroup) {
	concertRepo := concerts.NewRepository(r.db.GetPostgreSQL())
	concertService := concerts.NewService(concertRepo)
	if r.cacheService != nil {
		concertService.SetCacheService(r.cacheService)
	}
	concertController := concerts.NewController(concertService)

	concerts.SetupConcertRoutes(rg, concertController, r.config)
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) catalog.Service {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo)
	if r.cacheService != nil {
		catalogService.SetCacheService(r.cacheService)
	}
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController, r.config)
	return catalogService
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) (checkout.Service, tickets.Service) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo)

	checkoutRepo := checkout.NewRepository(r.db.GetPostgreSQL())
	checkoutService := checkout.NewService(checkoutRepo)
	checkoutService.SetTicketIssuer(ticketService)
	if r.producer != nil {
		checkoutService.SetEventPublisher(r.producer)
	}
	checkoutController := checkout.NewController(checkoutService)

	checkout.SetupBookingRoutes(rg, checkoutController, r.config)
	return checkoutService, ticketService
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup, ticketService tickets.Service) {
	ticketController := tickets.NewController(ticketService)
	tickets.SetupTicketRoutes(rg, ticketController, r.config)
}

func (r *Router) setupSelectionRoutes(rg *gin.RouterGroup, catalogService catalog.Service, checkoutService checkout.Service) {
	r.wizardManager = wizard.NewManager(catalogService, checkoutService, r.config.Selection)
	wizardController := wizard.NewController(r.wizardManager)

	wizard.SetupSelectionRoutes(rg, wizardController, r.config)
}

// Close releases background resources owned by the route layer.
func (r *Router) Close() {
	if r.wizardManager != nil {
		r.wizardManager.Close()
	}
}
