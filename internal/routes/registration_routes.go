package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func RegistrationRoutes(r *gin.RouterGroup) {
	volunteer := r.Group("")
	volunteer.Use(middleware.RequireAuthWithRole(models.RoleVolunteer))
	{
		volunteer.POST("/events/:id/register", controllers.RegisterForEvent)
		volunteer.DELETE("/events/:id/register", controllers.CancelRegistration)
		volunteer.GET("/registrations/me", controllers.MyRegistrations)
	}

	r.PATCH("/registrations/:id",
		middleware.RequireAuthWithRole(models.RoleOrganization, models.RoleAdmin),
		controllers.UpdateRegistrationStatus)
}
