package main

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/oakmeet/meetup_backend/chat"
	"github.com/oakmeet/meetup_backend/config"
	"github.com/oakmeet/meetup_backend/controllers"
	"github.com/oakmeet/meetup_backend/database"
	"github.com/oakmeet/meetup_backend/docs"
	"github.com/oakmeet/meetup_backend/joins"
	"github.com/oakmeet/meetup_backend/logger"
	"github.com/oakmeet/meetup_backend/middleware"
	"github.com/oakmeet/meetup_backend/websocket"
)

// @title           Meetup API
// @version         1.0
// @description     API Server for the Meetup Activity Platform
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Environment)
	defer log.Sync()
	logger.SetGlobal(log)

	// Initialize database
	database.Connect(cfg)
	database.Migrate()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Meetup API"
	docs.SwaggerInfo.Description = "API Server for the Meetup Activity Platform"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Core components: all publishers get the hub handed to them, no
	// ambient broadcast state.
	hub := websocket.NewHub(log)
	go hub.Run(context.Background())

	store := chat.NewStore(database.DB, log)
	coordinator := joins.New(database.DB, log)

	wsHandler := websocket.NewHandler(hub, store, log)
	joinController := controllers.NewJoinController(coordinator)
	conversationController := controllers.NewConversationController(store, hub)

	controllers.PageSize = cfg.PageSize

	if cfg.Environment == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Public routes
	router.GET("/api/activities/hot", controllers.GetHotActivities)
	router.GET("/api/categories", controllers.GetCategories)

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Profile routes
		api.GET("/profile", controllers.GetProfile)
		api.PUT("/profile", controllers.UpdateProfile)
		api.DELETE("/profile", controllers.DeleteProfile)

		// Activity routes
		api.GET("/activities", controllers.GetActivities)
		api.POST("/activities", controllers.CreateActivity)
		api.GET("/activities/:id", controllers.GetActivity)
		api.PUT("/activities/:id", controllers.UpdateActivity)
		api.POST("/activities/:id/comments", controllers.AddComment)
		api.GET("/activities/:id/reviews", controllers.GetReviews)
		api.POST("/activities/:id/reviews", controllers.AddReview)

		// Join request routes
		api.POST("/activities/:id/join", joinController.RequestJoin)
		api.GET("/requests", joinController.GetPendingRequests)
		api.POST("/requests/:id", joinController.HandleRequest)

		// Conversation routes
		api.GET("/conversations", conversationController.GetConversations)
		api.POST("/conversations", conversationController.CreateConversation)
		api.GET("/conversations/:id/messages", conversationController.GetMessages)

		// Report routes
		api.POST("/reports", controllers.CreateReport)
	}

	// WebSocket routes
	router.GET("/ws/chat/:id", wsHandler.ServeChat)
	router.GET("/ws/unread_counts", wsHandler.ServeUnreadCounts)

	// Start server
	log.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
