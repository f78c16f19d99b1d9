package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNoInput         = errors.New("no images were submitted")
	ErrNoValidImages   = errors.New("no valid image could be processed")
	ErrInferenceFailed = errors.New("inference failed")
)

type ErrorKind string

const (
	KindNoInput         ErrorKind = "no_input"
	KindNoValidImages   ErrorKind = "no_valid_images"
	KindInferenceFailed ErrorKind = "inference_failed"
)

// DecodeFailure is a non-fatal per-file intake error.
type DecodeFailure struct {
	Filename string
	Cause    error
}

func NewDecodeFailure(filename string, cause error) *DecodeFailure {
	return &DecodeFailure{
		Filename: filename,
		Cause:    cause,
	}
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("failed to open image %s: %v", e.Filename, e.Cause)
}

func (e *DecodeFailure) Unwrap() error {
	return e.Cause
}

type InferenceFailedError struct {
	Analysis string
	Cause    error
}

func NewInferenceFailedError(analysis string, cause error) *InferenceFailedError {
	return &InferenceFailedError{
		Analysis: analysis,
		Cause:    cause,
	}
}

func (e *InferenceFailedError) Error() string {
	return fmt.Sprintf("%s analysis failed: %v", e.Analysis, e.Cause)
}

func (e *InferenceFailedError) Unwrap() []error {
	return []error{ErrInferenceFailed, e.Cause}
}

// KindOf maps a flow-halting error onto its kind. ok is false for errors outside the taxonomy.
func KindOf(err error) (kind ErrorKind, ok bool) {
	switch {
	case errors.Is(err, ErrNoInput):
		return KindNoInput, true
	case errors.Is(err, ErrNoValidImages):
		return KindNoValidImages, true
	case errors.Is(err, ErrInferenceFailed):
		return KindInferenceFailed, true
	default:
		return "", false
	}
}
