// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busify/internal/booking"
	"busify/internal/catalog"
	"busify/internal/notifications"
	"busify/internal/seatmap"
	"busify/internal/shared/config"
	"busify/internal/shared/database"
	"busify/internal/ticket"
	"busify/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	notifications *notifications.Service

	// retained across setup calls for cross-module wiring
	catalogService catalog.Service
	bookingService booking.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notificationService *notifications.Service) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Catalog first: booking and seat map wiring depend on it.
		r.setupCatalogRoutes(api)
		r.setupBookingRoutes(api)
		r.setupSeatMapRoutes(api)
		r.setupTicketRoutes(api)
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
				"service":   "busify-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busify-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) cacheService() cache.Service {
	if redisClient := r.db.GetRedis(); redisClient != nil {
		return cache.NewService(redisClient)
	}
	return nil
}

// setupCatalogRoutes configures station/bus/route/luggage-type listing
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo)
	if cacheService := r.cacheService(); cacheService != nil {
		catalogService.SetCacheService(cacheService)
	}
	catalogController := catalog.NewController(catalogService)

	r.catalogService = catalogService
	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupBookingRoutes configures booking creation and lookup
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := booking.NewRepository(r.db.GetPostgreSQL())
	ticketRepo := ticket.NewRepository(r.db.GetPostgreSQL())
	holder := booking.NewSeatHolder(r.db.GetRedis(), r.config.Redis.SeatHoldTTL)
	fare := booking.NewFareCalculator(r.config.Fare.ServiceFee)
	generator := seatmap.NewGenerator(r.config.Fare)

	bookingService := booking.NewService(bookingRepo, ticketRepo, holder, fare, r.catalogService, generator)
	if r.notifications != nil {
		bookingService.SetEventPublisher(r.notifications)
	}
	bookingController := booking.NewController(bookingService)

	r.bookingService = bookingService
	booking.SetupBookingRoutes(rg, bookingController)
}

// setupSeatMapRoutes configures the per-departure seat map endpoint
func (r *Router) setupSeatMapRoutes(rg *gin.RouterGroup) {
	bookingRepo := booking.NewRepository(r.db.GetPostgreSQL())
	generator := seatmap.NewGenerator(r.config.Fare)

	seatMapService := seatmap.NewService(generator, r.catalogService, booking.NewAvailability(bookingRepo))
	if cacheService := r.cacheService(); cacheService != nil {
		seatMapService.SetCacheService(cacheService)
	}
	seatMapController := seatmap.NewController(seatMapService)

	seatmap.SetupSeatMapRoutes(rg, seatMapController)
}

// setupTicketRoutes configures verification and boarding scan
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketRepo := ticket.NewRepository(r.db.GetPostgreSQL())
	ticketService := ticket.NewService(ticketRepo, r.bookingService)
	if r.notifications != nil {
		ticketService.SetScanPublisher(r.notifications)
	}
	ticketController := ticket.NewController(ticketService)

	ticket.SetupTicketRoutes(rg, ticketController)
}
