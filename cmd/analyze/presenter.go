package main

import (
	"fmt"
	"io"
	"strings"

	"packaging-report/internal/domain/entities"
)

// consolePresenter prints each step as soon as the flow reports it.
type consolePresenter struct {
	out io.Writer
}

func newConsolePresenter(out io.Writer) *consolePresenter {
	return &consolePresenter{out: out}
}

func (p *consolePresenter) StateChanged(session *entities.Session) {
	switch session.State() {
	case entities.StateExtracting:
		fmt.Fprintln(p.out, "Analyzing the labeling to extract technical information...")
	case entities.StateEvaluating:
		fmt.Fprintln(p.out, "Running the technical evaluation of the packaging...")
	case entities.StateDone:
		fmt.Fprintln(p.out, "Analysis complete")
	}
}

func (p *consolePresenter) DecodeFailed(failure *entities.DecodeFailure) {
	fmt.Fprintf(p.out, "[error] %v\n", failure)
}

func (p *consolePresenter) ResultReady(result *entities.AnalysisResult) {
	fmt.Fprintf(p.out, "\n== %s ==\n%s\n\n", result.Title(), result.Text())
}

func (p *consolePresenter) Failed(kind entities.ErrorKind, err error) {
	switch kind {
	case entities.KindNoInput:
		fmt.Fprintln(p.out, "[warning] Upload at least one image.")
	case entities.KindNoValidImages:
		fmt.Fprintln(p.out, "[warning] No valid image was processed.")
	default:
		fmt.Fprintf(p.out, "[error] %s\n", strings.TrimSpace(err.Error()))
	}
}
