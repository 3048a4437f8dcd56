package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func HourRoutes(r *gin.RouterGroup) {
	hours := r.Group("/hours")
	{
		hours.POST("", middleware.RequireAuthWithRole(models.RoleVolunteer), controllers.LogHours)
		hours.GET("/me", middleware.RequireAuthWithRole(models.RoleVolunteer), controllers.MyHours)
		hours.PATCH("/:id/verify", middleware.RequireAuthWithRole(models.RoleOrganization, models.RoleAdmin), controllers.VerifyHours)
	}
}
