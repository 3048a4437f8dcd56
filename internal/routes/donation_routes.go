package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/models"
)

func DonationRoutes(r *gin.RouterGroup) {
	donations := r.Group("/donations")
	donations.Use(middleware.RequireAuth())
	{
		donations.POST("", controllers.CreateDonation)
		donations.GET("/me", controllers.MyDonations)
		donations.GET("/received", middleware.RequireAuthWithRole(models.RoleOrganization), controllers.ReceivedDonations)
		donations.PATCH("/:id/status", middleware.RequireAuthWithRole(models.RoleOrganization, models.RoleAdmin), controllers.UpdateDonationStatus)
	}
}
