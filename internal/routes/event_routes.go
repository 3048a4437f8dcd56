package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func EventRoutes(r *gin.RouterGroup) {
	r.GET("/categories", controllers.ListCategories)

	events := r.Group("/events")
	{
		events.GET("", controllers.ListEvents)
		events.GET("/map", controllers.EventsMap)
		events.GET("/:id", controllers.GetEvent)
	}

	manage := r.Group("/events")
	manage.Use(middleware.RequireAuthWithRole(models.RoleOrganization, models.RoleAdmin))
	{
		manage.PUT("/:id", controllers.UpdateEvent)
		manage.DELETE("/:id", controllers.DeleteEvent)
		manage.GET("/:id/registrations", controllers.ListEventRegistrations)
	}

	// creating is organization-only: admins have no profile to own the event
	r.POST("/events", middleware.RequireAuthWithRole(models.RoleOrganization), controllers.CreateEvent)
}
