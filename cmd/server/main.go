package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devpal/backend/internal/analyzer"
	"devpal/backend/internal/config"
	"devpal/backend/internal/feedback"
	"devpal/backend/internal/generator"
	"devpal/backend/internal/handlers"
	"devpal/backend/internal/jobs"
	"devpal/backend/internal/llm"
	_ "devpal/backend/internal/llm/gemini"
	_ "devpal/backend/internal/llm/openai"
	"devpal/backend/internal/models"
	"devpal/backend/internal/prompts"
	"devpal/backend/internal/routers"
	"devpal/backend/internal/tasks"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, generateHandler *handlers.GenerateHandler, analyzeHandler *handlers.AnalyzeHandler, configHandler *handlers.ConfigHandler, feedbackHandler *handlers.FeedbackHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.GenerateRoutes(router, generateHandler)
	routers.AnalyzeRoutes(router, analyzeHandler)
	routers.ConfigRoutes(router, configHandler)
	routers.FeedbackRoutes(router, feedbackHandler)
}

// Helper function for environment variables
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate feedback tables
	if err := db.AutoMigrate(&models.AIFeedback{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	// load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration, wrapped with the shared retry policy
	baseProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}
	aiProvider := llm.WithRetry(baseProvider, llm.DefaultRetryPolicy())

	generatorService := generator.NewService(aiProvider, promptManager, logger)
	analyzerService := analyzer.NewService(aiProvider, promptManager, logger)

	taskManager := tasks.NewManager(tasks.NewMemoryStore(), generatorService, logger)

	generateHandler := handlers.NewGenerateHandler(generatorService, taskManager, logger)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService, logger)
	configHandler := handlers.NewConfigHandler(promptManager, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg)

	// Initialize database for feedback storage
	db, err := initDatabase()
	if err != nil {
		logger.Error("Failed to initialize database, feedback system will be disabled", zap.Error(err))
	}

	// Initialize feedback manager (only if database is available)
	var feedbackManager *feedback.FeedbackManager
	var exporterJob *jobs.FeedbackExporterJob

	if db != nil {
		cacheTTL, _ := time.ParseDuration(getEnv("FEEDBACK_CACHE_TTL", "15m"))
		feedbackManager = feedback.NewFeedbackManager(db, cacheTTL, logger)

		generatorService.SetFeedbackManager(feedbackManager)
		analyzerService.SetFeedbackManager(feedbackManager)

		// Initialize feedback exporter job
		exporterConfig := &jobs.ExporterConfig{
			Schedule:      getEnv("FEEDBACK_EXPORT_SCHEDULE", "0 2 * * *"),
			ExportDir:     getEnv("FEEDBACK_EXPORT_DIR", "./exports"),
			ExportEnabled: getEnv("FEEDBACK_EXPORT_ENABLED", "false") == "true",
		}

		exporterJob = jobs.NewFeedbackExporterJob(feedbackManager, exporterConfig, logger)
		if exporterConfig.ExportEnabled {
			if err := exporterJob.Start(); err != nil {
				logger.Error("Failed to start feedback exporter job", zap.Error(err))
			} else {
				logger.Info("Feedback exporter job started", zap.String("schedule", exporterConfig.Schedule))
			}
		}

		logger.Info("Feedback system initialized successfully")
	}

	feedbackHandler := handlers.NewFeedbackHandler(feedbackManager, logger)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// the request timeout must leave room for a full generation call plus
	// retries, which is far beyond typical API budgets
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(150*time.Second))

	registerRoutes(router, generateHandler, analyzeHandler, configHandler, feedbackHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 160 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Backend service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Backend service shutting down...")

	// Stop feedback exporter job if running
	if exporterJob != nil {
		exporterJob.Stop()
		logger.Info("Feedback exporter job stopped")
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Backend service exited")
}
