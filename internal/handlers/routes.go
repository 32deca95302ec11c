package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"serverless-blog-api/internal/middleware"
	"serverless-blog-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	BlogService services.BlogService
	Logger      *logrus.Logger

	// EnableSwagger serves the API documentation under /swagger
	EnableSwagger bool
}

// NewRouter builds a gin engine with the global middleware and all routes
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	SetupMiddleware(router, config.Logger)
	SetupRoutes(router, config)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	blogHandler := NewBlogHandler(config.BlogService)

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Liveness probe
	router.GET("/", blogHandler.Health)

	blog := router.Group("/blog")
	{
		blog.GET("", blogHandler.GetAll)
		blog.POST("", blogHandler.Post)
		blog.GET("/:id", blogHandler.Get)
		blog.DELETE("/:id", blogHandler.Delete)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
}
