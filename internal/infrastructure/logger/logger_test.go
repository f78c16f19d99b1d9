package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, development := range []bool{false, true} {
		log, err := New(development)
		if err != nil {
			t.Fatalf("New(%v) error = %v", development, err)
		}
		if log == nil {
			t.Fatalf("New(%v) returned nil logger", development)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != development {
			t.Errorf("New(%v): debug enabled = %v", development, got)
		}
	}
}
