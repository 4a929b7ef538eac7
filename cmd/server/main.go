package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"noorai/interview/internal/config"
	"noorai/interview/internal/generation"
	"noorai/interview/internal/handlers"
	"noorai/interview/internal/interview"
	"noorai/interview/internal/jobs"
	"noorai/interview/internal/llm"
	_ "noorai/interview/internal/llm/gemini"
	_ "noorai/interview/internal/llm/ollama"
	"noorai/interview/internal/prompts"
	"noorai/interview/internal/routers"
	"noorai/interview/internal/store"
)

func registerRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, uploadHandler *handlers.UploadHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, uploadHandler)
}

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

	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.Int("max_questions", cfg.MaxQuestions))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	interviewStore, err := store.NewGormStore(db)
	if err != nil {
		logger.Fatal("Failed to initialize interview store", zap.Error(err))
	}

	gateway := generation.NewGateway(aiProvider, promptManager, logger)
	engine := interview.NewEngine(interviewStore, gateway, cfg.MaxQuestions, logger)

	interviewHandler := handlers.NewInterviewHandler(engine, logger)
	uploadHandler := handlers.NewUploadHandler(engine, logger)
	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, cfg)

	// report exporter job (disabled unless scheduled explicitly)
	exporterConfig := &jobs.ExporterConfig{
		Schedule:  getEnv("REPORT_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir: getEnv("REPORT_EXPORT_DIR", "./exports"),
		Enabled:   getEnv("REPORT_EXPORT_ENABLED", "false") == "true",
	}
	exporterJob := jobs.NewReportExporterJob(interviewStore, exporterConfig, logger)
	if exporterConfig.Enabled {
		if err := exporterJob.Start(); err != nil {
			logger.Error("Failed to start report exporter job", zap.Error(err))
		} else {
			logger.Info("Report exporter job started", zap.String("schedule", exporterConfig.Schedule))
		}
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3001")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Generation calls can take minutes, so the request timeout has to sit
	// well above the usual 60s.
	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(cfg.GenerationTimeout+time.Minute))

	registerRoutes(router, interviewHandler, uploadHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	if exporterConfig.Enabled {
		exporterJob.Stop()
		logger.Info("Report exporter job stopped")
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
