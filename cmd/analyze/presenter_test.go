package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packaging-report/internal/domain/entities"
)

func TestConsolePresenter(t *testing.T) {
	var out bytes.Buffer
	p := newConsolePresenter(&out)

	analysis := entities.Analysis{Name: entities.AnalysisExtraction, Title: "Extraction result"}
	p.DecodeFailed(entities.NewDecodeFailure("broken.jpg", errors.New("unexpected EOF")))
	p.ResultReady(entities.NewAnalysisResult(analysis, "Lot: L1", "gemini-2.5-flash"))
	p.Failed(entities.KindInferenceFailed, entities.NewInferenceFailedError(entities.AnalysisEvaluation, errors.New("timeout")))

	got := out.String()
	for _, want := range []string{"broken.jpg", "== Extraction result ==", "Lot: L1", "evaluation analysis failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Index(got, "broken.jpg") > strings.Index(got, "Lot: L1") {
		t.Errorf("Expected output in call order")
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.JPG", "a.jpeg", "notes.txt", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	paths, err := listImages(dir)
	if err != nil {
		t.Fatalf("listImages() error = %v", err)
	}

	want := []string{filepath.Join(dir, "a.jpeg"), filepath.Join(dir, "b.JPG")}
	if len(paths) != len(want) {
		t.Fatalf("Expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Expected %s, got %s", want[i], paths[i])
		}
	}
}

func TestDiskFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "front.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	f := diskFile(path)
	if f.Name() != "front.jpg" {
		t.Errorf("Expected base name, got %s", f.Name())
	}

	missing := diskFile(filepath.Join(t.TempDir(), "missing.jpg"))
	if _, err := missing.Open(); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
