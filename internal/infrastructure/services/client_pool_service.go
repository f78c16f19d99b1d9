package services

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/vertexai/genai" // VertexAI用
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	genai_std "google.golang.org/genai" // 標準GenAI用

	"packaging-report/internal/domain/repositories"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// lazyClient builds its client on first use and keeps it until reset.
// A failed build is not cached, the next call tries again.
type lazyClient[T any] struct {
	mu     sync.Mutex
	client T
	built  bool
	build  func(ctx context.Context) (T, error)
}

func (l *lazyClient[T]) get(ctx context.Context) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.built {
		return l.client, nil
	}

	client, err := l.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	l.client, l.built = client, true
	return client, nil
}

// reset hands back the built client, if any, and forgets it.
func (l *lazyClient[T]) reset() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, built := l.client, l.built
	var zero T
	l.client, l.built = zero, false
	return client, built
}

type clientPoolService struct {
	config repositories.AIClientConfig
	genAI  *lazyClient[*genai_std.Client]
	vertex *lazyClient[*genai.Client]
}

func NewClientPoolService(config repositories.AIClientConfig) repositories.ClientPoolService {
	return &clientPoolService{
		config: config,
		genAI: &lazyClient[*genai_std.Client]{
			build: func(ctx context.Context) (*genai_std.Client, error) {
				return newGenAIClient(ctx, config)
			},
		},
		vertex: &lazyClient[*genai.Client]{
			build: func(ctx context.Context) (*genai.Client, error) {
				return newVertexAIClient(ctx, config)
			},
		},
	}
}

func (s *clientPoolService) GenAIClient(ctx context.Context) (*genai_std.Client, error) {
	return s.genAI.get(ctx)
}

func (s *clientPoolService) VertexAIClient(ctx context.Context) (*genai.Client, error) {
	return s.vertex.get(ctx)
}

func (s *clientPoolService) Config() repositories.AIClientConfig {
	return s.config
}

func (s *clientPoolService) Close() error {
	// GenAI Clientはリソースクリーンアップ不要
	s.genAI.reset()

	if client, built := s.vertex.reset(); built {
		if err := client.Close(); err != nil {
			return fmt.Errorf("VertexAI client close error: %w", err)
		}
	}
	return nil
}

func newGenAIClient(ctx context.Context, config repositories.AIClientConfig) (*genai_std.Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required for the Gemini API client")
	}

	client, err := genai_std.NewClient(ctx, &genai_std.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai_std.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func newVertexAIClient(ctx context.Context, config repositories.AIClientConfig) (*genai.Client, error) {
	if config.ProjectID == "" || config.Location == "" {
		return nil, fmt.Errorf("project and location are required for the VertexAI client")
	}

	// ADCが見つからない場合は起動時に失敗させる
	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", config.Location)
	client, err := genai.NewClient(ctx, config.ProjectID, config.Location,
		option.WithEndpoint(endpoint),
		option.WithCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create VertexAI client: %w", err)
	}
	return client, nil
}
