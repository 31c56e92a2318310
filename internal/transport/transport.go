package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusbuzz/campusbuzz-api/internal/entity"
	"github.com/campusbuzz/campusbuzz-api/internal/service"
	"github.com/campusbuzz/campusbuzz-api/internal/transport/middleware"
)

func InitRoutes(
	eventHandler *EventHandler,
	userHandler *UserHandler,
	adminHandler *AdminHandler,
	userService service.UserService,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	{
		// Identity routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/register", userHandler.Register)
			auth.POST("/logout", userHandler.Logout)
			auth.GET("/me", userHandler.Me)
			auth.PUT("/profile", userHandler.UpdateProfile)
		}

		// Public event routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetEvents)
			events.GET("/featured", eventHandler.GetFeaturedEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("/:id/register", eventHandler.RegisterForEvent)
		}

		// Organizer routes
		organizer := api.Group("/")
		organizer.Use(middleware.RequireRole(userService, entity.RoleOrganizer, entity.RoleAdmin))
		{
			organizer.POST("/events", eventHandler.CreateEvent)
			organizer.PUT("/events/:id", eventHandler.UpdateEvent)
			organizer.DELETE("/events/:id", eventHandler.DeleteEvent)
			organizer.GET("/organizer/events", eventHandler.GetOrganizerEvents)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(userService, entity.RoleAdmin))
		{
			admin.GET("/events", adminHandler.GetEvents)
			admin.POST("/events/:id/approve", adminHandler.ApproveEvent)
			admin.POST("/events/:id/reject", adminHandler.RejectEvent)
			admin.PUT("/events/:id/featured", adminHandler.SetFeatured)
			admin.GET("/stats", adminHandler.GetStats)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
