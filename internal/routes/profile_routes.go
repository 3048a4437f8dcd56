package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func ProfileRoutes(r *gin.RouterGroup) {
	r.GET("/profile", middleware.RequireAuth(), controllers.GetProfile)
	r.PUT("/profile/volunteer", middleware.RequireAuthWithRole(models.RoleVolunteer), controllers.UpdateVolunteerProfile)
	r.PUT("/profile/organization", middleware.RequireAuthWithRole(models.RoleOrganization), controllers.UpdateOrganizationProfile)

	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/volunteer", middleware.RequireAuthWithRole(models.RoleVolunteer), controllers.VolunteerDashboard)
		dashboard.GET("/organization", middleware.RequireAuthWithRole(models.RoleOrganization), controllers.OrganizationDashboard)
	}
}
