package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
)

func AuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
	}
}
