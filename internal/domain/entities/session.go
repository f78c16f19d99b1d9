package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"packaging-report/internal/domain/valueobjects"
)

type SessionID string

// Session is the state of a single analyze action. A new action always gets a new Session.
type Session struct {
	id        SessionID
	state     SessionState
	images    []*valueobjects.UploadedImage
	failures  []*DecodeFailure
	results   []*AnalysisResult
	err       error
	errKind   ErrorKind
	createdAt time.Time
}

func NewSession() *Session {
	return &Session{
		id:        SessionID(uuid.NewString()),
		state:     StateIdle,
		createdAt: time.Now(),
	}
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Transition moves the session forward. Error is entered through Fail.
func (s *Session) Transition(to SessionState) error {
	if s.state.IsTerminal() {
		return fmt.Errorf("session %s is already %s", s.id, s.state)
	}

	if to == StateError {
		return fmt.Errorf("use Fail to enter the %s state", StateError)
	}

	next, ok := stateOrder[to]
	if !ok {
		return fmt.Errorf("unknown session state: %s", to)
	}

	if next <= stateOrder[s.state] {
		return fmt.Errorf("invalid transition %s -> %s", s.state, to)
	}

	s.state = to
	return nil
}

func (s *Session) Fail(err error) error {
	if s.state.IsTerminal() {
		return fmt.Errorf("session %s is already %s", s.id, s.state)
	}

	kind, ok := KindOf(err)
	if !ok {
		return fmt.Errorf("error outside the session taxonomy: %w", err)
	}

	s.state = StateError
	s.err = err
	s.errKind = kind
	return nil
}

func (s *Session) Err() error {
	return s.err
}

func (s *Session) ErrKind() ErrorKind {
	return s.errKind
}

func (s *Session) SetImages(images []*valueobjects.UploadedImage) error {
	if len(images) > MaxImages {
		return fmt.Errorf("at most %d images per session, got %d", MaxImages, len(images))
	}
	s.images = images
	return nil
}

func (s *Session) Images() []*valueobjects.UploadedImage {
	return s.images
}

func (s *Session) AddDecodeFailure(failure *DecodeFailure) {
	s.failures = append(s.failures, failure)
}

func (s *Session) DecodeFailures() []*DecodeFailure {
	return append([]*DecodeFailure(nil), s.failures...)
}

// AddResult fills the slot for the result's analysis. A slot is written once.
func (s *Session) AddResult(result *AnalysisResult) error {
	if _, exists := s.Result(result.Name()); exists {
		return fmt.Errorf("result for %s is already set", result.Name())
	}
	s.results = append(s.results, result)
	return nil
}

func (s *Session) Result(name string) (*AnalysisResult, bool) {
	for _, r := range s.results {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

func (s *Session) Results() []*AnalysisResult {
	return append([]*AnalysisResult(nil), s.results...)
}

// Release drops the decoded images once the action has ended.
func (s *Session) Release() {
	s.images = nil
}
