package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tunestream/backend/internal/config"
	"github.com/tunestream/backend/internal/handlers"
	"github.com/tunestream/backend/internal/middleware"
	"github.com/tunestream/backend/internal/models"
	"github.com/tunestream/backend/internal/services"
	"github.com/tunestream/backend/internal/store/mongostore"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitMongo(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(ctx); err != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	st := mongostore.New(db)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	emailService, err := services.NewEmailService(cfg)
	if err != nil {
		log.Fatalf("Failed to init email service: %v", err)
	}
	authService := services.NewAuthService(st, cfg, redisClient, emailService)
	userService := services.NewUserService(st)
	artistService := services.NewArtistService(st)
	albumService := services.NewAlbumService(st)
	trackService := services.NewTrackService(st)
	playlistService := services.NewPlaylistService(st)
	playbackService := services.NewPlaybackService(st)
	recommendationService := services.NewRecommendationService(st)
	visitorService := services.NewVisitorService(st)
	googleProvider := services.NewGoogleProvider(cfg)
	facebookProvider := services.NewFacebookProvider(cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, authService, googleProvider, facebookProvider)
	userHandler := handlers.NewUserHandler(cfg, userService)
	trackHandler := handlers.NewTrackHandler(trackService)
	albumHandler := handlers.NewAlbumHandler(albumService)
	artistHandler := handlers.NewArtistHandler(artistService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	playbackHandler := handlers.NewPlaybackHandler(playbackService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	visitorHandler := handlers.NewVisitorHandler(visitorService)
	configHandler := handlers.NewConfigHandler(cfg)

	// Health check outside API group (no /api/v1 prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
		api.GET("/config/public", configHandler.Public)
		api.POST("/visitors/save-userinfo", visitorHandler.SaveUserInfo)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
			auth.POST("/facebook", authHandler.FacebookLogin)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/logout", middleware.Auth(authService), authHandler.Logout)
			auth.POST("/change-password", middleware.Auth(authService), authHandler.ChangePassword)
		}

		users := api.Group("/users")
		users.Use(middleware.Auth(authService))
		{
			users.GET("/me", userHandler.Me)
			users.PATCH("/me", userHandler.UpdateAccount)
			users.PATCH("/me/preferences", userHandler.UpdatePreferences)
			users.GET("/me/liked-tracks", userHandler.LikedTracks)
			users.POST("/me/liked-tracks/:trackId", userHandler.LikeTrack)
			users.DELETE("/me/liked-tracks/:trackId", userHandler.UnlikeTrack)
			users.GET("/me/top-tracks", userHandler.TopTracks)
			users.DELETE("/me", userHandler.DeleteAccount)
		}

		tracks := api.Group("/tracks")
		{
			tracks.GET("", trackHandler.List)
			tracks.GET("/:id", trackHandler.Get)
			tracks.POST("/:id/play", trackHandler.Play)
			tracks.POST("/:id/like", trackHandler.Like)
			tracks.POST("", middleware.Auth(authService), trackHandler.Create)
			tracks.PATCH("/:id", middleware.Auth(authService), trackHandler.Update)
			tracks.DELETE("/:id", middleware.Auth(authService), trackHandler.Delete)
		}

		albums := api.Group("/albums")
		{
			albums.GET("", albumHandler.List)
			albums.GET("/:id", albumHandler.Get)
			albums.POST("", middleware.Auth(authService), albumHandler.Create)
			albums.PATCH("/:id", middleware.Auth(authService), albumHandler.Update)
			albums.DELETE("/:id", middleware.Auth(authService), albumHandler.Delete)
		}

		artists := api.Group("/artists")
		{
			artists.GET("", artistHandler.List)
			artists.GET("/:id", artistHandler.Get)
			artists.POST("", middleware.Auth(authService), artistHandler.Create)
			artists.PATCH("/:id", middleware.Auth(authService), artistHandler.Update)
			artists.DELETE("/:id", middleware.Auth(authService), artistHandler.Delete)
		}

		playlists := api.Group("/playlists")
		{
			playlists.GET("/public", playlistHandler.Public)
			playlists.GET("/:id", middleware.OptionalAuth(authService), playlistHandler.Get)
			playlists.POST("", middleware.Auth(authService), playlistHandler.Create)
			playlists.GET("", middleware.Auth(authService), playlistHandler.Mine)
			playlists.PATCH("/:id", middleware.Auth(authService), playlistHandler.Update)
			playlists.DELETE("/:id", middleware.Auth(authService), playlistHandler.Delete)
			playlists.POST("/:id/tracks/:trackId", middleware.Auth(authService), playlistHandler.AddTrack)
			playlists.DELETE("/:id/tracks/:trackId", middleware.Auth(authService), playlistHandler.RemoveTrack)
		}

		playback := api.Group("/playback")
		playback.Use(middleware.Auth(authService))
		{
			playback.POST("/start", playbackHandler.Start)
			playback.PATCH("/:id/progress", playbackHandler.UpdateProgress)
			playback.GET("/history", playbackHandler.History)
			playback.GET("/recent", playbackHandler.Recent)
		}

		recommendations := api.Group("/recommendations")
		recommendations.Use(middleware.Auth(authService))
		{
			recommendations.GET("/for-you", recommendationHandler.ForYou)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
