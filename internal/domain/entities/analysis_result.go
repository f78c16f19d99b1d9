package entities

import "time"

// AnalysisResult is the verbatim completion for one analysis. It has no setters.
type AnalysisResult struct {
	name      string
	title     string
	text      string
	model     string
	createdAt time.Time
}

func NewAnalysisResult(analysis Analysis, text string, model string) *AnalysisResult {
	return &AnalysisResult{
		name:      analysis.Name,
		title:     analysis.Title,
		text:      text,
		model:     model,
		createdAt: time.Now(),
	}
}

func (r *AnalysisResult) Name() string {
	return r.name
}

func (r *AnalysisResult) Title() string {
	return r.title
}

func (r *AnalysisResult) Text() string {
	return r.text
}

func (r *AnalysisResult) Model() string {
	return r.model
}

func (r *AnalysisResult) CreatedAt() time.Time {
	return r.createdAt
}
