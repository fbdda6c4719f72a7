package main

import (
	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/seed"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Workout Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	// Equipment images are optional; without S3 the catalog renders text-only.
	var imageStorage storage.ImageStorage
	if cfg.S3.BucketName != "" {
		log.Println("Initializing image storage service...")
		imageStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("No S3 bucket configured; exercise images disabled.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	dayRepo := mongo.NewMongoWorkoutDayRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	setRepo := mongo.NewMongoExerciseSetRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)

	// --- Seed Catalog ---
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.SeedIfNeeded(seedCtx, dayRepo, exerciseRepo); err != nil {
		seedCancel()
		log.Fatalf("FATAL: Failed to seed workout catalog: %v", err)
	}
	seedCancel()
	log.Println("Workout catalog ready.")

	// --- Initialize Services ---
	log.Println("Initializing services...")
	historyService := service.NewHistoryService(sessionRepo, setRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Workout)
	progressionService := service.NewProgressionService(historyService, settingsService)
	sessionService := service.NewSessionService(dayRepo, exerciseRepo, sessionRepo, setRepo, historyService, settingsService)
	catalogService := service.NewCatalogService(dayRepo, exerciseRepo, imageStorage)
	dashboardService := service.NewDashboardService(dayRepo, sessionRepo)
	progressService := service.NewProgressService(dayRepo, exerciseRepo, sessionRepo, setRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, catalogService, sessionService, progressionService, dashboardService, progressService, settingsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
