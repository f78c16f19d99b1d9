package entities

import (
	"fmt"

	"packaging-report/internal/domain/valueobjects"
)

const MaxImages = 5

type AnalysisRequest struct {
	analysis Analysis

	images []*valueobjects.UploadedImage
}

func NewAnalysisRequest(analysis Analysis, images []*valueobjects.UploadedImage) (*AnalysisRequest, error) {
	if analysis.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	if len(images) == 0 {
		return nil, ErrNoValidImages
	}

	if len(images) > MaxImages {
		return nil, fmt.Errorf("at most %d images per request, got %d", MaxImages, len(images))
	}

	return &AnalysisRequest{
		analysis: analysis,
		images:   images,
	}, nil
}

func (r *AnalysisRequest) Analysis() Analysis {
	return r.analysis
}

func (r *AnalysisRequest) Prompt() string {
	return r.analysis.Prompt
}

func (r *AnalysisRequest) Images() []*valueobjects.UploadedImage {
	return r.images
}
