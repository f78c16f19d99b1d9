package external

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/repositories"
)

// VertexAIService calls the same model family through Vertex AI with application default credentials.
type VertexAIService struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

func NewVertexAIService(client *genai.Client, model string, log *zap.Logger) repositories.InferenceGateway {
	return &VertexAIService{
		client: client,
		model:  model,
		log:    log,
	}
}

func (s *VertexAIService) Model() string {
	return s.model
}

func (s *VertexAIService) Complete(ctx context.Context, request *entities.AnalysisRequest) (*entities.AnalysisResult, error) {
	parts, err := buildVertexParts(request)
	if err != nil {
		return nil, err
	}

	s.log.Info("GenerateContent",
		zap.String("model", s.model),
		zap.String("backend", "vertex"),
		zap.String("analysis", request.Analysis().Name),
		zap.Int("imageCount", len(request.Images())))

	model := s.client.GenerativeModel(s.model)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := vertexText(resp)
	if err != nil {
		return nil, err
	}

	return entities.NewAnalysisResult(request.Analysis(), text, s.model), nil
}

// クライアントはプールが所有するのでここでは閉じない
func (s *VertexAIService) Close() error {
	return nil
}

func buildVertexParts(request *entities.AnalysisRequest) ([]genai.Part, error) {
	parts := []genai.Part{
		genai.Text(request.Prompt()),
	}

	for _, img := range request.Images() {
		data, mimeType, err := img.Payload()
		if err != nil {
			return nil, fmt.Errorf("failed to prepare image %s: %w", img.Filename(), err)
		}
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})
	}

	return parts, nil
}

func vertexText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("no text in response")
	}

	return out, nil
}
