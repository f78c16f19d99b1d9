package repositories

import (
	"context"

	"cloud.google.com/go/vertexai/genai" // VertexAI用
	genai_std "google.golang.org/genai"  // 標準GenAI用
)

// AIクライアント共通設定
type AIClientConfig struct {
	APIKey    string
	ProjectID string
	Location  string
}

// ClientPoolService hands out one lazily built client per backend.
// Only the backend that is actually used ever gets a client.
type ClientPoolService interface {
	// geminiバックエンド（APIキー認証）
	GenAIClient(ctx context.Context) (*genai_std.Client, error)

	// vertexバックエンド（ADC認証）
	VertexAIClient(ctx context.Context) (*genai.Client, error)

	Config() AIClientConfig

	Close() error
}
