package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/messages", controllers.HandleMessageWebSocket)
	}
}
