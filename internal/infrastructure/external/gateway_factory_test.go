package external

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"packaging-report/internal/config"
	"packaging-report/internal/domain/repositories"
	"packaging-report/internal/infrastructure/services"
)

func TestNewInferenceGateway(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		apiKey  string
		wantErr bool
	}{
		{
			name:    "gemini with api key",
			backend: config.BackendGemini,
			apiKey:  "test-key",
		},
		{
			name:    "gemini without api key",
			backend: config.BackendGemini,
			wantErr: true,
		},
		{
			name:    "vertex without project",
			backend: config.BackendVertex,
			wantErr: true,
		},
		{
			name:    "unknown backend",
			backend: "openai",
			apiKey:  "test-key",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := services.NewClientPoolService(repositories.AIClientConfig{APIKey: tt.apiKey})
			defer pool.Close()

			gateway, err := NewInferenceGateway(context.Background(), tt.backend, "gemini-2.5-flash", pool, zaptest.NewLogger(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewInferenceGateway() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && gateway.Model() != "gemini-2.5-flash" {
				t.Errorf("Unexpected model %s", gateway.Model())
			}
		})
	}
}
