package external

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai_std "google.golang.org/genai"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/repositories"
)

// GeminiAIService calls the Gemini API with an API key.
type GeminiAIService struct {
	genAIClient *genai_std.Client
	model       string
	log         *zap.Logger
}

func NewGeminiAIService(genAIClient *genai_std.Client, model string, log *zap.Logger) repositories.InferenceGateway {
	return &GeminiAIService{
		genAIClient: genAIClient,
		model:       model,
		log:         log,
	}
}

func (s *GeminiAIService) Model() string {
	return s.model
}

func (s *GeminiAIService) Complete(ctx context.Context, request *entities.AnalysisRequest) (*entities.AnalysisResult, error) {
	contents, err := buildContents(request)
	if err != nil {
		return nil, err
	}

	s.log.Info("GenerateContent",
		zap.String("model", s.model),
		zap.String("analysis", request.Analysis().Name),
		zap.Int("imageCount", len(request.Images())))

	resp, err := s.genAIClient.Models.GenerateContent(ctx,
		s.model,
		contents,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("no candidates in response")
	}

	// 表示はそのまま。空判定だけ空白を除いて行う
	respText := resp.Text()
	if strings.TrimSpace(respText) == "" {
		return nil, fmt.Errorf("no text in response (finish reason: %s)", resp.Candidates[0].FinishReason)
	}

	return entities.NewAnalysisResult(request.Analysis(), respText, s.model), nil
}

func (s *GeminiAIService) Close() error {
	return nil
}

// プロンプトを先頭に、画像を提出順に並べる
func buildContents(request *entities.AnalysisRequest) ([]*genai_std.Content, error) {
	parts := []*genai_std.Part{
		genai_std.NewPartFromText(request.Prompt()),
	}

	for _, img := range request.Images() {
		data, mimeType, err := img.Payload()
		if err != nil {
			return nil, fmt.Errorf("failed to prepare image %s: %w", img.Filename(), err)
		}
		parts = append(parts, &genai_std.Part{
			InlineData: &genai_std.Blob{
				MIMEType: mimeType,
				Data:     data,
			},
		})
	}

	return []*genai_std.Content{
		genai_std.NewContentFromParts(parts, genai_std.RoleUser),
	}, nil
}
