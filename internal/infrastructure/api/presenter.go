package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/model"
)

// streamPresenter writes one NDJSON line per event and flushes it before returning,
// so the client has rendered a result before the flow issues the next call.
type streamPresenter struct {
	enc      *json.Encoder
	rc       *http.ResponseController
	messages messageSet
	log      *zap.Logger
}

func newStreamPresenter(w http.ResponseWriter, messages messageSet, log *zap.Logger) *streamPresenter {
	return &streamPresenter{
		enc:      json.NewEncoder(w),
		rc:       http.NewResponseController(w),
		messages: messages,
		log:      log,
	}
}

func (p *streamPresenter) StateChanged(session *entities.Session) {
	ev := model.NewStateEvent(session)
	ev.Message = p.messages.stateMessage(session.State())
	p.write(ev)
}

func (p *streamPresenter) DecodeFailed(failure *entities.DecodeFailure) {
	ev := model.NewDecodeFailureEvent(failure)
	ev.Message = p.messages.decodeFailureMessage(failure)
	p.write(ev)
}

func (p *streamPresenter) ResultReady(result *entities.AnalysisResult) {
	p.write(model.NewResultEvent(result))
}

func (p *streamPresenter) Failed(kind entities.ErrorKind, err error) {
	p.write(model.NewErrorEvent(kind, p.messages.errorMessage(kind, err)))
}

func (p *streamPresenter) write(ev model.Event) {
	if err := p.enc.Encode(ev); err != nil {
		// クライアント切断時はフローを止めずにログだけ残す
		p.log.Warn("Failed to write event", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	if err := p.rc.Flush(); err != nil {
		p.log.Debug("Flush not supported", zap.Error(err))
	}
}
