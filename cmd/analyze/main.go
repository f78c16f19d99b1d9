package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"packaging-report/internal/application/usecases"
	"packaging-report/internal/config"
	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/prompts"
	domainrepos "packaging-report/internal/domain/repositories"
	domainservices "packaging-report/internal/domain/services"
	"packaging-report/internal/infrastructure/external"
	"packaging-report/internal/infrastructure/logger"
	infraservices "packaging-report/internal/infrastructure/services"
)

var validExtensions = []string{".jpg", ".jpeg"}

func main() {
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

	// 引数がなければ同じ階層の「images」ディレクトリを使う
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths, err = listImages("images")
		if err != nil {
			log.Warn("Failed to list images directory", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	analysisUseCase := usecases.NewAnalysisUseCase(
		domainservices.NewIntakeDomainService(cfg.App.MaxImagePixels, log),
		domainservices.NewInferenceDomainService(gateway, cfg.AI.Timeout, log),
		nil,
		prompts.Catalog(cfg.App.PromptLanguage),
		log,
	)

	files := make([]domainservices.UploadedFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, diskFile(p))
	}

	session := analysisUseCase.Execute(ctx, usecases.AnalysisInput{Files: files}, newConsolePresenter(os.Stdout))
	if session.State() != entities.StateDone {
		os.Exit(1)
	}
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if slices.Contains(validExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// diskFile is a local path that is only opened when intake reaches it.
type diskFile string

func (f diskFile) Name() string {
	return filepath.Base(string(f))
}

func (f diskFile) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}
