package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/repositories"
)

var errEmptyCompletion = errors.New("model returned an empty completion")

type InferenceDomainService struct {
	gateway repositories.InferenceGateway
	timeout time.Duration
	log     *zap.Logger
}

// NewInferenceDomainService wraps the gateway. A zero timeout leaves the transport default in place.
func NewInferenceDomainService(gateway repositories.InferenceGateway, timeout time.Duration, log *zap.Logger) *InferenceDomainService {
	return &InferenceDomainService{
		gateway: gateway,
		timeout: timeout,
		log:     log,
	}
}

// Complete issues exactly one gateway call. Any failure comes back as *entities.InferenceFailedError.
func (s *InferenceDomainService) Complete(ctx context.Context, request *entities.AnalysisRequest) (*entities.AnalysisResult, error) {
	name := request.Analysis().Name

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	result, err := s.gateway.Complete(ctx, request)
	if err != nil {
		if s.isQuotaError(err) {
			s.log.Warn("Model quota exhausted",
				zap.String("analysis", name),
				zap.String("model", s.gateway.Model()),
				zap.Error(err))
			err = fmt.Errorf("service temporarily unavailable due to high demand: %w", err)
		}
		return nil, entities.NewInferenceFailedError(name, err)
	}

	if result == nil || strings.TrimSpace(result.Text()) == "" {
		return nil, entities.NewInferenceFailedError(name, errEmptyCompletion)
	}

	s.log.Info("Completion received",
		zap.String("analysis", name),
		zap.String("model", result.Model()),
		zap.Int("images", len(request.Images())),
		zap.Int("chars", len(result.Text())),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

func (s *InferenceDomainService) isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted")
}
