package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	sessions *services.SessionService,
	authHandler *AuthHandler,
	campusHandler *CampusHandler,
	zoneHandler *ZoneHandler,
	riderHandler *RiderHandler,
	activityHandler *ActivityHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := AuthMiddleware(tokenService, sessions)

	// Auth routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", auth, authHandler.Logout)
	}

	router.GET("/activity", auth, activityHandler.ListActivities)

	// Campus routes
	campus := router.Group("/campus")
	campus.Use(auth)
	{
		campusHandler.register(campus)
		campus.GET("/options", campusHandler.Options)
		campus.GET("/:id", campusHandler.GetCampus)
	}

	// Zone routes
	zone := router.Group("/zone")
	zone.Use(auth)
	{
		zoneHandler.register(zone)
		zone.GET("/:id", zoneHandler.GetZone)
		zone.DELETE("/detail", zoneHandler.DeleteDetail)
	}

	// Rider routes
	rider := router.Group("/rider")
	rider.Use(auth)
	{
		riderHandler.register(rider)
		rider.POST("", riderHandler.CreateRider)
		rider.POST("/:id/approve", riderHandler.Approve)
		rider.POST("/:id/reject", riderHandler.Reject)
		rider.PATCH("/:id", riderHandler.UpdateRider)
	}
	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
