package repositories

import (
	"context"

	"packaging-report/internal/domain/entities"
)

// マルチモーダルモデルへの推論ゲートウェイ
// 1回の呼び出しで1回だけリモートへリクエストする（リトライ・キャッシュなし）
type InferenceGateway interface {
	Complete(ctx context.Context, request *entities.AnalysisRequest) (*entities.AnalysisResult, error)

	// 設定されたモデルID
	Model() string

	Close() error
}
