// internal/handlers/router.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ngo-management-api/internal/config"
	"ngo-management-api/internal/middleware"
	"ngo-management-api/internal/models"
	"ngo-management-api/internal/store"
	"ngo-management-api/pkg/auth"
)

// NewRouter wires every route group against the injected stores. Tests
// call this with the in-memory stores; main wires the Mongo ones.
func NewRouter(cfg *config.Config, stores store.Stores, jwtManager *auth.JWTManager, log *logrus.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  recovered,
		}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticate := middleware.Authenticate(jwtManager, stores.Users)
	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Duration(cfg.RateWindow)*time.Second)

	authHandler := NewAuthHandler(stores.Users, jwtManager, log)
	usersHandler := NewUsersHandler(stores.Users, log)
	donationsHandler := NewDonationsHandler(stores.Donations, stores.Users, log)
	projectsHandler := NewProjectsHandler(stores.Projects, stores.Users, log)
	eventsHandler := NewEventsHandler(stores.Events, stores.Users, log)

	authRoutes := router.Group("/auth")
	authRoutes.Use(limiter.RateLimit())
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", authenticate, authHandler.Me)
	}

	users := router.Group("/users")
	{
		users.GET("", usersHandler.GetUsers)
		users.GET("/:id", usersHandler.GetUser)
		users.POST("", usersHandler.CreateUser)
		users.PUT("/:id", usersHandler.UpdateUser)
		users.DELETE("/:id", usersHandler.DeleteUser)
	}

	donations := router.Group("/donations")
	{
		donations.GET("", donationsHandler.GetDonations)
		donations.POST("", donationsHandler.CreateDonation)
		donations.PUT("/:id", donationsHandler.UpdateDonation)
		donations.DELETE("/:id", donationsHandler.DeleteDonation)
		donations.GET("/donor/:donorId", donationsHandler.GetDonationsByDonor)
	}

	projects := router.Group("/projects")
	{
		projects.GET("", projectsHandler.GetProjects)
		projects.GET("/:id", projectsHandler.GetProject)
		projects.GET("/manager/:managerId", projectsHandler.GetProjectsByManager)
		projects.POST("", authenticate, middleware.RequirePermission(models.PermissionManageProjects), projectsHandler.CreateProject)
		projects.PUT("/:id", authenticate, middleware.RequirePermission(models.PermissionManageProjects), projectsHandler.UpdateProject)
		projects.DELETE("/:id", projectsHandler.DeleteProject)
	}

	events := router.Group("/events")
	{
		events.GET("", eventsHandler.GetEvents)
		events.GET("/:id", eventsHandler.GetEvent)
		events.GET("/organizer/:organizerId", eventsHandler.GetEventsByOrganizer)
		events.POST("", authenticate, middleware.RequirePermission(models.PermissionManageEvents), eventsHandler.CreateEvent)
		events.PUT("/:id", authenticate, middleware.RequirePermission(models.PermissionManageEvents), eventsHandler.UpdateEvent)
		events.DELETE("/:id", eventsHandler.DeleteEvent)
	}

	return router
}
