// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/cancellation"
	"cineseat/internal/confirmation"
	"cineseat/internal/holds"
	"cineseat/internal/inventory"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/config"
	"cineseat/internal/shared/database"
	"cineseat/internal/showtimes"
	"cineseat/pkg/cache"
	"cineseat/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	logger    *logger.Logger

	store           inventory.Store
	showtimeService showtimes.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		logger:    log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Shared seat inventory store; every coordinator drives transitions
	// through it
	auditor := audit.NewRecorder(r.db.GetPostgreSQL())
	r.store = inventory.NewStore(r.db.GetPostgreSQL(), auditor)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupShowtimeRoutes(api)
		r.setupAuditRoutes(api, auditor)
		r.setupHoldRoutes(api)
		r.setupConfirmationRoutes(api)
		r.setupCancellationRoutes(api)
	}
}

// Store exposes the shared inventory store for background jobs.
func (r *Router) Store() inventory.Store {
	return r.store
}

// ShowtimeService exposes the showtime service (seat map cache owner).
func (r *Router) ShowtimeService() showtimes.Service {
	return r.showtimeService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cineseat",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cineseat",
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

// setupShowtimeRoutes configures showtime and seat map routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	r.showtimeService = showtimes.NewService(showtimeRepo, r.store, cacheService, r.config.Redis.SeatMapTTL)
	showtimeController := showtimes.NewController(r.showtimeService)

	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupAuditRoutes configures the seat transition history route
func (r *Router) setupAuditRoutes(rg *gin.RouterGroup, auditor audit.Recorder) {
	auditController := audit.NewController(auditor)

	audit.SetupAuditRoutes(rg, auditController)
}

// setupHoldRoutes configures the hold placement route
func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	holdService := holds.NewService(r.store, r.publisher, r.showtimeService, r.config.Holds, r.logger)
	holdController := holds.NewController(holdService)

	holds.SetupHoldRoutes(rg, holdController)
}

// setupConfirmationRoutes configures the hold-to-booking route
func (r *Router) setupConfirmationRoutes(rg *gin.RouterGroup) {
	confirmationService := confirmation.NewService(r.store, r.publisher, r.showtimeService, r.logger)
	confirmationController := confirmation.NewController(confirmationService)

	confirmation.SetupConfirmationRoutes(rg, confirmationController)
}

// setupCancellationRoutes configures hold and booking cancel routes
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	cancellationService := cancellation.NewService(r.store, r.publisher, r.showtimeService, r.config.Booking, r.logger)
	cancellationController := cancellation.NewController(cancellationService)

	cancellation.SetupCancellationRoutes(rg, cancellationController)
}
