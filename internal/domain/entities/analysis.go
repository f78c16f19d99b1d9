package entities

// Analysis is one fixed (name, prompt) pair run against the uploaded images.
type Analysis struct {
	Name   string
	Title  string
	Prompt string

	// State the session is in while this analysis runs
	State SessionState
}

const (
	AnalysisExtraction = "extraction"
	AnalysisEvaluation = "evaluation"
)
