package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func AdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/organizations/:id/verify", controllers.VerifyOrganization)
	}
}
