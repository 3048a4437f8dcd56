package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
)

func MessageRoutes(r *gin.RouterGroup) {
	messages := r.Group("/messages")
	messages.Use(middleware.RequireAuth())
	{
		messages.POST("", controllers.SendMessage)
		messages.GET("", controllers.Inbox)
		messages.PATCH("/:id/read", controllers.MarkMessageRead)
	}
}
