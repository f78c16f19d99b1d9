package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"packaging-report/internal/application/services"
	"packaging-report/internal/application/usecases"
	"packaging-report/internal/domain/entities"
	"packaging-report/internal/domain/prompts"
	"packaging-report/internal/domain/repositories"
	"packaging-report/model"
)

// ブラウザ単位で最新セッションを引くためのCookie
const ownerCookieName = "packaging_report_owner"

type AnalysisHandler struct {
	analysisUseCase *usecases.AnalysisUseCase
	uploadService   *services.UploadService
	sessions        repositories.SessionRepository
	maxUploadSize   int64
	language        prompts.Language
	log             *zap.Logger
}

func NewAnalysisHandler(
	analysisUseCase *usecases.AnalysisUseCase,
	uploadService *services.UploadService,
	sessions repositories.SessionRepository,
	maxUploadSize int64,
	language prompts.Language,
	log *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUseCase: analysisUseCase,
		uploadService:   uploadService,
		sessions:        sessions,
		maxUploadSize:   maxUploadSize,
		language:        language,
		log:             log,
	}
}

// HandleAnalyze runs one analyze action and streams its progress as NDJSON.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if isTooLarge(err) {
			h.sendError(w, "upload is too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.log.Warn("Invalid analyze request", zap.Error(err))
		h.sendError(w, "request must be multipart/form-data", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := usecases.AnalysisInput{
		Owner: h.ownerID(w, r),
		Files: h.uploadService.ParseFromRequest(r),
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	presenter := newStreamPresenter(w, messagesFor(h.language), h.log)
	session := h.analysisUseCase.Execute(r.Context(), input, presenter)
	presenter.write(model.NewDoneEvent(session))
}

// HandleSession returns the display slots of a stored session.
func (h *AnalysisHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.sessions.FindByID(r.Context(), entities.SessionID(id))
	if err != nil {
		h.sendError(w, "session not found", http.StatusNotFound)
		return
	}

	h.sendSession(w, session)
}

// HandleLatestSession returns the latest session of the calling browser.
func (h *AnalysisHandler) HandleLatestSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(ownerCookieName)
	if err != nil || cookie.Value == "" {
		h.sendError(w, "session not found", http.StatusNotFound)
		return
	}

	session, err := h.sessions.FindLatest(r.Context(), cookie.Value)
	if err != nil {
		h.sendError(w, "session not found", http.StatusNotFound)
		return
	}

	h.sendSession(w, session)
}

func (h *AnalysisHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *AnalysisHandler) ownerID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(ownerCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	owner := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookieName,
		Value:    owner,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return owner
}

func (h *AnalysisHandler) sendSession(w http.ResponseWriter, session *entities.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")

	if err := json.NewEncoder(w).Encode(model.NewSessionResponse(session)); err != nil {
		h.log.Error("Failed to encode session response", zap.Error(err))
	}
}

func (h *AnalysisHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(model.ErrorResponse{Success: false, Error: message})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return errors.Is(err, multipart.ErrMessageTooLarge)
}
