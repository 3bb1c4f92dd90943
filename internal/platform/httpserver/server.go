package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	submissionreview "reviewdesk/contexts/campaign-editorial/submission-review"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	reviewhttp "reviewdesk/contexts/campaign-editorial/submission-review/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "reviewdesk/internal/platform/httpserver/docs"
)

type Options struct {
	// Realtime, when set, is mounted as the websocket gateway.
	Realtime http.Handler
	Swagger  bool
}

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	review submissionreview.Module
	opts   Options
}

func New(review submissionreview.Module, logger *slog.Logger, addr string, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		review: review,
		opts:   opts,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	if s.opts.Swagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}
	if s.opts.Realtime != nil {
		s.mux.Handle("GET /api/review/v1/realtime", s.opts.Realtime)
	}

	s.mux.HandleFunc("GET /api/review/v1/submissions/{submission_id}/view", s.handleGetSubmissionView)
	s.mux.HandleFunc("POST /api/review/v1/submissions/{submission_id}/review", s.handleReviewSubmission)
	s.mux.HandleFunc("PUT /api/review/v1/submissions/{submission_id}/posting-link", s.handleUpdatePostingLink)
	s.mux.HandleFunc("POST /api/review/v1/submissions/{submission_id}/posting-link/review", s.handleReviewPostingLink)
	s.mux.HandleFunc("DELETE /api/review/v1/submissions/{submission_id}/session", s.handleCloseSession)
	s.mux.HandleFunc("POST /api/review/v1/pitches/{pitch_id}/review", s.handleReviewPitch)
}

// @Summary      Submission review view
// @Description  Status gating, action panel and feedback feed for the calling viewer.
// @Tags         review
// @Produce      json
// @Param        submission_id  path    string  true   "Submission ID"
// @Param        mode           query   string  false  "approve | request_revision | request_changes"
// @Param        X-User-Id      header  string  true   "Viewer user ID"
// @Param        X-User-Role    header  string  true   "admin | superadmin | client | creator"
// @Success      200  {object}  reviewhttp.SubmissionViewResponse
// @Failure      401  {object}  reviewhttp.ErrorResponse
// @Failure      404  {object}  reviewhttp.ErrorResponse
// @Router       /api/review/v1/submissions/{submission_id}/view [get]
func (s *Server) handleGetSubmissionView(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	resp, err := s.review.Handler.GetSubmissionViewHandler(
		r.Context(),
		viewer,
		r.PathValue("submission_id"),
		r.URL.Query().Get("mode"),
	)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary  Approve or request changes on a submission
// @Tags     review
// @Accept   json
// @Produce  json
// @Param    submission_id  path    string                              true  "Submission ID"
// @Param    request        body    reviewhttp.ReviewSubmissionRequest  true  "Review"
// @Success  200  {object}  reviewhttp.ReviewSubmissionResponse
// @Failure  400  {object}  reviewhttp.ErrorResponse
// @Failure  409  {object}  reviewhttp.ErrorResponse
// @Router   /api/review/v1/submissions/{submission_id}/review [post]
func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	var req reviewhttp.ReviewSubmissionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.review.Handler.ReviewSubmissionHandler(r.Context(), viewer, r.PathValue("submission_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary  Submit a posting link
// @Tags     posting-link
// @Accept   json
// @Produce  json
// @Param    submission_id  path  string                               true  "Submission ID"
// @Param    request        body  reviewhttp.UpdatePostingLinkRequest  true  "Posting link"
// @Success  200  {object}  reviewhttp.PostingLinkResponse
// @Failure  400  {object}  reviewhttp.ErrorResponse
// @Failure  403  {object}  reviewhttp.ErrorResponse
// @Router   /api/review/v1/submissions/{submission_id}/posting-link [put]
func (s *Server) handleUpdatePostingLink(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	var req reviewhttp.UpdatePostingLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.review.Handler.UpdatePostingLinkHandler(r.Context(), viewer, r.PathValue("submission_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary  Approve or reject a pending posting link
// @Tags     posting-link
// @Accept   json
// @Produce  json
// @Param    submission_id  path  string                               true  "Submission ID"
// @Param    request        body  reviewhttp.ReviewPostingLinkRequest  true  "Decision"
// @Success  200  {object}  reviewhttp.PostingLinkResponse
// @Failure  403  {object}  reviewhttp.ErrorResponse
// @Router   /api/review/v1/submissions/{submission_id}/posting-link/review [post]
func (s *Server) handleReviewPostingLink(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	var req reviewhttp.ReviewPostingLinkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.review.Handler.ReviewPostingLinkHandler(r.Context(), viewer, r.PathValue("submission_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// @Summary  Close the viewer's review session
// @Tags     review
// @Param    submission_id  path  string  true  "Submission ID"
// @Success  204
// @Failure  404  {object}  reviewhttp.ErrorResponse
// @Router   /api/review/v1/submissions/{submission_id}/session [delete]
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	if !s.review.Handler.CloseSessionHandler(viewer, r.PathValue("submission_id")) {
		writeReviewError(w, http.StatusNotFound, "session_not_found", "no open review session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary  Review a pitch
// @Tags     pitch
// @Accept   json
// @Produce  json
// @Param    pitch_id  path  string                         true  "Pitch ID"
// @Param    request   body  reviewhttp.ReviewPitchRequest  true  "Decision"
// @Success  200  {object}  reviewhttp.ReviewPitchResponse
// @Failure  409  {object}  reviewhttp.ErrorResponse
// @Router   /api/review/v1/pitches/{pitch_id}/review [post]
func (s *Server) handleReviewPitch(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFromRequest(w, r)
	if !ok {
		return
	}
	var req reviewhttp.ReviewPitchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := s.review.Handler.ReviewPitchHandler(r.Context(), viewer, r.PathValue("pitch_id"), req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func viewerFromRequest(w http.ResponseWriter, r *http.Request) (entities.Viewer, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return entities.Viewer{}, false
	}
	role, ok := entities.ParseRole(r.Header.Get("X-User-Role"))
	if !ok {
		writeReviewError(w, http.StatusForbidden, "invalid_role", "X-User-Role must be admin, superadmin, client or creator")
		return entities.Viewer{}, false
	}
	return entities.Viewer{
		UserID:    userID,
		Role:      role,
		AdminRole: r.Header.Get("X-Admin-Role"),
		AdminMode: r.Header.Get("X-Admin-Mode"),
	}, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

// upstreamError is a platform API failure that carries a displayable message.
type upstreamError interface {
	error
	UserMessage() string
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	var apiErr upstreamError
	switch {
	case errors.Is(err, domainerrors.ErrSubmissionNotFound):
		writeReviewError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidReviewInput),
		errors.Is(err, domainerrors.ErrUnsupportedAction):
		writeReviewError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domainerrors.ErrFeedbackRequired),
		errors.Is(err, domainerrors.ErrUnknownReason),
		errors.Is(err, domainerrors.ErrInvalidPostingLink):
		writeReviewError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidRole),
		errors.Is(err, domainerrors.ErrActionNotPermitted),
		errors.Is(err, domainerrors.ErrSuperadminRequired):
		writeReviewError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domainerrors.ErrActionInFlight):
		writeReviewError(w, http.StatusConflict, "action_in_flight", err.Error())
	case errors.Is(err, domainerrors.ErrActionNotAvailable):
		writeReviewError(w, http.StatusConflict, "action_not_available", err.Error())
	case errors.As(err, &apiErr):
		message := apiErr.UserMessage()
		if message == "" {
			message = "platform api request failed"
		}
		writeReviewError(w, http.StatusBadGateway, "platform_api_error", message)
	default:
		writeReviewError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
