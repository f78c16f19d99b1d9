package model

import (
	"time"

	"packaging-report/internal/domain/entities"
)

// Event types written to the /analyze stream, one JSON object per line.
const (
	EventState         = "state"
	EventDecodeFailure = "decode_failure"
	EventResult        = "result"
	EventError         = "error"
	EventDone          = "done"
)

// Event is a single line of the NDJSON analyze stream.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	State     string `json:"state,omitempty"`
	// decode_failure
	Filename string `json:"filename,omitempty"`
	// result
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	Model string `json:"model,omitempty"`
	// error
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewStateEvent(session *entities.Session) Event {
	return Event{
		Type:      EventState,
		SessionID: string(session.ID()),
		State:     session.State().String(),
	}
}

func NewDecodeFailureEvent(failure *entities.DecodeFailure) Event {
	return Event{
		Type:     EventDecodeFailure,
		Filename: failure.Filename,
		Message:  failure.Error(),
	}
}

func NewResultEvent(result *entities.AnalysisResult) Event {
	return Event{
		Type:  EventResult,
		Name:  result.Name(),
		Title: result.Title(),
		Text:  result.Text(),
		Model: result.Model(),
	}
}

func NewErrorEvent(kind entities.ErrorKind, message string) Event {
	return Event{
		Type:    EventError,
		Kind:    string(kind),
		Message: message,
	}
}

func NewDoneEvent(session *entities.Session) Event {
	return Event{
		Type:      EventDone,
		SessionID: string(session.ID()),
		State:     session.State().String(),
	}
}

// ResultView is one rendered display slot.
type ResultView struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is what /api/sessions returns for the latest action.
type SessionResponse struct {
	Success        bool         `json:"success"`
	SessionID      string       `json:"session_id"`
	State          string       `json:"state"`
	CreatedAt      time.Time    `json:"created_at"`
	Results        []ResultView `json:"results"`
	DecodeFailures []string     `json:"decode_failures,omitempty"`
	ErrorKind      string       `json:"error_kind,omitempty"`
	Error          string       `json:"error,omitempty"`
}

func NewSessionResponse(session *entities.Session) SessionResponse {
	resp := SessionResponse{
		Success:   true,
		SessionID: string(session.ID()),
		State:     session.State().String(),
		CreatedAt: session.CreatedAt(),
		Results:   []ResultView{},
	}

	for _, r := range session.Results() {
		resp.Results = append(resp.Results, ResultView{
			Name:      r.Name(),
			Title:     r.Title(),
			Text:      r.Text(),
			Model:     r.Model(),
			CreatedAt: r.CreatedAt(),
		})
	}

	for _, f := range session.DecodeFailures() {
		resp.DecodeFailures = append(resp.DecodeFailures, f.Error())
	}

	if err := session.Err(); err != nil {
		resp.ErrorKind = string(session.ErrKind())
		resp.Error = err.Error()
	}

	return resp
}

// ErrorResponse is returned when the request itself is rejected before the flow starts.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
