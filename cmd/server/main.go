package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"packaging-report/internal/application/services"
	"packaging-report/internal/application/usecases"
	"packaging-report/internal/config"
	"packaging-report/internal/domain/prompts"
	domainrepos "packaging-report/internal/domain/repositories"
	domainservices "packaging-report/internal/domain/services"
	"packaging-report/internal/infrastructure/api"
	"packaging-report/internal/infrastructure/external"
	"packaging-report/internal/infrastructure/logger"
	"packaging-report/internal/infrastructure/repositories"
	infraservices "packaging-report/internal/infrastructure/services"
)

func main() {
	// 認証情報がなければ起動前に終了する
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure layer
	clientPool := infraservices.NewClientPoolService(domainrepos.AIClientConfig{
		APIKey:    cfg.AI.APIKey,
		ProjectID: cfg.AI.ProjectID,
		Location:  cfg.AI.Location,
	})
	defer clientPool.Close()

	gateway, err := external.NewInferenceGateway(ctx, cfg.AI.Backend, cfg.AI.Model, clientPool, log)
	if err != nil {
		log.Fatal("Failed to create inference gateway", zap.Error(err))
	}
	defer gateway.Close()

	sessionRepository := repositories.NewMemorySessionRepository(cfg.App.SessionTTL, cfg.App.SessionMaxOwners)

	// Initialize domain layer
	intakeDomainService := domainservices.NewIntakeDomainService(cfg.App.MaxImagePixels, log)
	inferenceDomainService := domainservices.NewInferenceDomainService(gateway, cfg.AI.Timeout, log)

	// Initialize application layer
	analysisUseCase := usecases.NewAnalysisUseCase(
		intakeDomainService,
		inferenceDomainService,
		sessionRepository,
		prompts.Catalog(cfg.App.PromptLanguage),
		log,
	)
	uploadService := services.NewUploadService()

	// Initialize API layer
	handler := api.NewAnalysisHandler(
		analysisUseCase,
		uploadService,
		sessionRepository,
		cfg.App.MaxUploadSize,
		cfg.App.PromptLanguage,
		log,
	)

	// Setup routes
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods("GET")
	r.HandleFunc("/analyze", handler.HandleAnalyze).Methods("POST")
	r.HandleFunc("/api/sessions/latest", handler.HandleLatestSession).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", handler.HandleSession).Methods("GET")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")

	// WriteTimeoutは推論のストリームを切ってしまうので設定しない
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("Starting server",
			zap.String("addr", cfg.Addr()),
			zap.String("backend", cfg.AI.Backend),
			zap.String("model", cfg.AI.Model),
			zap.String("language", string(cfg.App.PromptLanguage)))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
