package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"google.golang.org/api/option"

	"github.com/whereaboutapp/api-whereabout/internal/config"
	"github.com/whereaboutapp/api-whereabout/internal/handler"
	"github.com/whereaboutapp/api-whereabout/internal/middleware"
	"github.com/whereaboutapp/api-whereabout/internal/repository"
	"github.com/whereaboutapp/api-whereabout/internal/service"
	"github.com/whereaboutapp/api-whereabout/internal/ws"
	"github.com/whereaboutapp/api-whereabout/pkg/auth"
	"github.com/whereaboutapp/api-whereabout/pkg/mailer"
	"github.com/whereaboutapp/api-whereabout/pkg/notification"
	"github.com/whereaboutapp/api-whereabout/pkg/storage"
)

// @title           Whereabout API
// @version         1.0
// @description     Location-sharing social API: friends, geofenced locations, check-ins and a friends feed.

// @contact.name   API Support
// @contact.email  support@whereabout.local

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.basic BasicAuth

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting Whereabout API Server [env=%s]", cfg.App.Env)

	ctx := context.Background()

	// ==================== Firebase ====================
	var fbApp *firebase.App
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Firebase app: %v", err)
	}
	log.Printf("✅ Firebase app initialized [project=%s]", cfg.Firebase.ProjectID)

	// ==================== Firestore ====================
	fsClient, err := fbApp.Firestore(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	log.Println("✅ Connected to Firestore")

	// ==================== Token Verifier ====================
	var verifier auth.Verifier
	if cfg.Auth.Mode == "local" {
		verifier = auth.NewJWTVerifier(cfg.Auth.JWTSecret)
		log.Println("🔑 Auth mode: local JWT")
	} else {
		verifier, err = auth.NewFirebaseVerifier(ctx, fbApp)
		if err != nil {
			log.Fatalf("❌ Failed to initialize token verifier: %v", err)
		}
		log.Println("🔑 Auth mode: Firebase ID tokens")
	}

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Email (SMTP) ====================
	mailClient := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.FromName)

	// ==================== Push Notifications (FCM) ====================
	notifier, err := notification.NewService(ctx, fbApp)
	if err != nil {
		log.Printf("⚠️  FCM not available: %v (push notifications disabled)", err)
		notifier = nil
	}

	// ==================== MinIO Storage ====================
	var minioStorage *storage.Storage
	if cfg.MinIO.Endpoint != "" {
		minioStorage, err = storage.New(ctx, cfg.MinIO.Endpoint, cfg.MinIO.PublicURL, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			log.Printf("⚠️  MinIO not available: %v (avatar upload disabled)", err)
			minioStorage = nil
		}
	} else {
		log.Println("⚠️  MinIO not configured (avatar upload disabled)")
	}

	// ==================== Initialize Layers ====================
	// Repositories
	userRepo := repository.NewUserRepository(fsClient)
	relationRepo := repository.NewRelationRepository(fsClient)
	locationRepo := repository.NewLocationRepository(fsClient)
	eventRepo := repository.NewEventRepository(fsClient)

	// Services
	userService := service.NewUserService(userRepo)
	friendService := service.NewFriendService(relationRepo)
	locationService := service.NewLocationService(locationRepo)
	eventService := service.NewEventService(eventRepo, locationRepo)
	feedService := service.NewFeedService(relationRepo, userRepo, eventRepo, locationRepo)

	// WebSocket Hub (with Redis Pub/Sub for horizontal scaling)
	hub := ws.NewHub(rdb)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	// Handlers
	userHandler := handler.NewUserHandler(userService, minioStorage, mailClient)
	friendHandler := handler.NewFriendHandler(friendService, userService, hub, notifier)
	locationHandler := handler.NewLocationHandler(locationService)
	eventHandler := handler.NewEventHandler(eventService, friendService, userService, hub, notifier)
	feedHandler := handler.NewFeedHandler(feedService)
	adminHandler := handler.NewAdminHandler(userRepo, relationRepo, locationRepo, eventRepo)
	wsHandler := handler.NewWSHandler(hub, verifier)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)

	// ==================== API Routes ====================
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(verifier, rdb))
	{
		// Feed
		api.GET("/feed", feedHandler.FetchFeed)

		// Users
		api.POST("/users/create", userHandler.CreateUser)
		api.GET("/users/:id", userHandler.FetchUser)
		api.POST("/users/:id/token", userHandler.UpdateToken)
		api.POST("/users/avatar", userHandler.UploadAvatar)

		// Friends
		api.POST("/friends/create", friendHandler.CreateFriend)
		api.POST("/friends/:id/delete", friendHandler.Unfriend)

		// Locations
		api.GET("/locations", locationHandler.ListLocations)
		api.POST("/locations/create", locationHandler.CreateLocation)
		api.GET("/locations/:id", locationHandler.FetchLocation)
		api.POST("/locations/:id/edit", locationHandler.EditLocation)
		api.POST("/locations/:id/delete", locationHandler.DeleteLocation)

		// Events
		api.POST("/events/create", eventHandler.CreateEvent)
		api.GET("/events/:id", eventHandler.FetchEvent)
		api.POST("/events/:id/delete", eventHandler.DeleteEvent)
	}

	// Admin routes (HTTP Basic)
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.Admin.Username, cfg.Admin.Password))
	{
		admin.GET("/stats", adminHandler.Stats)
	}

	// WebSocket endpoint (auth via query parameter)
	router.GET("/ws", wsHandler.Connect)

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 Whereabout API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)
	log.Printf("🔌 WebSocket: ws://0.0.0.0:%s/ws?token=<token>", cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	hubCancel()
	log.Println("✅ Server exited gracefully")
}
