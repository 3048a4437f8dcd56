package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"volunteer_hub/internal/config"
	"volunteer_hub/internal/controllers"
	"volunteer_hub/internal/middleware"
)

// SetupRouter builds the engine with the shared middleware and every route group.
func SetupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(ginlog.SetLogger(ginlog.WithSkipPath([]string{"/health", "/metrics"})))

	r.GET("/health", controllers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	AuthRoutes(api)
	EventRoutes(api)
	RegistrationRoutes(api)
	HourRoutes(api)
	DonationRoutes(api)
	MessageRoutes(api)
	ProfileRoutes(api)
	UploadRoutes(api)
	AdminRoutes(api)
	WebSocketRoutes(r)

	return r
}
