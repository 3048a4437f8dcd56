package routes

import (
	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
)

func UploadRoutes(r *gin.RouterGroup) {
	r.POST("/uploads/presign", middleware.RequireAuth(), controllers.PresignUpload)
}
