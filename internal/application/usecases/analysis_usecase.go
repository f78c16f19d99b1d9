package usecases

import (
	"context"

	"go.uber.org/zap"

	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/repositories"
	"packaging-report/internal/domain/services"
)

// Presenter renders the flow as it progresses. Every call is synchronous:
// the flow does not move on until the presenter has returned.
type Presenter interface {
	StateChanged(session *entities.Session)
	DecodeFailed(failure *entities.DecodeFailure)
	ResultReady(result *entities.AnalysisResult)
	Failed(kind entities.ErrorKind, err error)
}

type AnalysisUseCase struct {
	intake    *services.IntakeDomainService
	inference *services.InferenceDomainService
	sessions  repositories.SessionRepository
	analyses  []entities.Analysis
	log       *zap.Logger
}

func NewAnalysisUseCase(
	intake *services.IntakeDomainService,
	inference *services.InferenceDomainService,
	sessions repositories.SessionRepository,
	analyses []entities.Analysis,
	log *zap.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		intake:    intake,
		inference: inference,
		sessions:  sessions,
		analyses:  analyses,
		log:       log,
	}
}

type AnalysisInput struct {
	// ブラウザ単位の識別子。空の場合は保存しない
	Owner string
	Files []services.UploadedFile
}

// Execute runs one analyze action on a fresh session. Errors are recorded on the
// returned session and reported to the presenter; they are never returned.
func (uc *AnalysisUseCase) Execute(ctx context.Context, input AnalysisInput, presenter Presenter) *entities.Session {
	session := entities.NewSession()
	log := uc.log.With(zap.String("session", string(session.ID())))

	defer uc.finish(ctx, log, input.Owner, session)

	if len(input.Files) == 0 {
		uc.fail(log, session, presenter, entities.ErrNoInput)
		return session
	}

	if !uc.advance(log, session, presenter, entities.StateIntake) {
		return session
	}

	images, failures, err := uc.intake.DecodeBatch(input.Files)
	for _, f := range failures {
		session.AddDecodeFailure(f)
		presenter.DecodeFailed(f)
	}
	if err != nil {
		uc.fail(log, session, presenter, err)
		return session
	}

	if err := session.SetImages(images); err != nil {
		log.Error("Intake returned too many images", zap.Error(err))
		uc.fail(log, session, presenter, entities.ErrNoValidImages)
		return session
	}

	for _, analysis := range uc.analyses {
		if !uc.advance(log, session, presenter, analysis.State) {
			return session
		}

		request, err := entities.NewAnalysisRequest(analysis, session.Images())
		if err != nil {
			uc.fail(log, session, presenter, entities.NewInferenceFailedError(analysis.Name, err))
			return session
		}

		result, err := uc.inference.Complete(ctx, request)
		if err != nil {
			uc.fail(log, session, presenter, err)
			return session
		}

		if err := session.AddResult(result); err != nil {
			uc.fail(log, session, presenter, entities.NewInferenceFailedError(analysis.Name, err))
			return session
		}

		presenter.ResultReady(result)
	}

	uc.advance(log, session, presenter, entities.StateDone)
	return session
}

func (uc *AnalysisUseCase) advance(log *zap.Logger, session *entities.Session, presenter Presenter, to entities.SessionState) bool {
	if err := session.Transition(to); err != nil {
		log.Error("Invalid session transition", zap.String("to", to.String()), zap.Error(err))
		uc.fail(log, session, presenter, entities.NewInferenceFailedError(string(to), err))
		return false
	}

	log.Info("Session state changed", zap.String("state", to.String()))
	presenter.StateChanged(session)
	return true
}

func (uc *AnalysisUseCase) fail(log *zap.Logger, session *entities.Session, presenter Presenter, err error) {
	if ferr := session.Fail(err); ferr != nil {
		log.Error("Failed to record session error", zap.Error(ferr))
		return
	}

	kind := session.ErrKind()
	if kind == entities.KindInferenceFailed {
		log.Error("Analysis failed", zap.String("kind", string(kind)), zap.Error(err))
	} else {
		log.Warn("Analysis halted", zap.String("kind", string(kind)), zap.Error(err))
	}

	presenter.StateChanged(session)
	presenter.Failed(kind, err)
}

func (uc *AnalysisUseCase) finish(ctx context.Context, log *zap.Logger, owner string, session *entities.Session) {
	session.Release()

	if owner == "" || uc.sessions == nil {
		return
	}

	// 呼び出し元がキャンセル済みでも表示スロットは保存する
	if err := uc.sessions.Save(context.WithoutCancel(ctx), owner, session); err != nil {
		log.Error("Failed to save session", zap.Error(err))
	}
}
