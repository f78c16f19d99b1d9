package external

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"packaging-report/internal/config"
	"packaging-report/internal/domain/repositories"
)

// NewInferenceGateway picks the adapter for backend and takes its client from the pool.
func NewInferenceGateway(ctx context.Context, backend, model string, pool repositories.ClientPoolService, log *zap.Logger) (repositories.InferenceGateway, error) {
	switch backend {
	case config.BackendGemini:
		client, err := pool.GenAIClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGeminiAIService(client, model, log), nil
	case config.BackendVertex:
		client, err := pool.VertexAIClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewVertexAIService(client, model, log), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %q", backend)
	}
}
