package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	submissionreview "reviewdesk/contexts/campaign-editorial/submission-review"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/memory"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	reviewhttp "reviewdesk/contexts/campaign-editorial/submission-review/transport/http"
	"reviewdesk/internal/platform/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubmissions() []entities.Submission {
	return []entities.Submission{
		{
			ID:         "submission-1",
			CampaignID: "campaign-1",
			Status:     entities.SubmissionStatusPendingReview,
			Video:      []entities.MediaItem{{ID: "video-1", URL: "https://cdn.example.com/video-1.mp4"}},
		},
	}
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	api := memory.NewPlatformAPI(
		seedSubmissions(),
		[]entities.Campaign{{ID: "campaign-1", Type: entities.CampaignTypeNormal}},
		[]entities.Pitch{{ID: "pitch-1", CampaignID: "campaign-1", Status: entities.PitchStatusPendingReview}},
	)
	bus := messaging.NewBus(slog.Default())
	api.Publisher = bus
	conn := bus.Connect()
	t.Cleanup(conn.Close)

	module, err := submissionreview.NewInMemoryModule(
		seedSubmissions(),
		api,
		conn,
		memory.NewManualScheduler(time.Unix(0, 0)),
		slog.Default(),
	)
	require.NoError(t, err)
	t.Cleanup(module.Sessions.CloseAll)
	return New(module, slog.Default(), ":0", opts)
}

func doRequest(server *Server, method string, path string, body []byte, userID string, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) reviewhttp.ErrorResponse {
	t.Helper()
	var body reviewhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestReviewRoutesRequireUserHeader(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "", "admin")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "missing_user", decodeError(t, rr).Code)
}

func TestReviewRoutesRejectUnknownRole(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "user-1", "owner")

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "invalid_role", decodeError(t, rr).Code)
}

func TestClientViewHidesMediaBeforeForwarding(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "client-1", "client")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view reviewhttp.SubmissionViewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.True(t, view.MediaHidden)
	assert.Empty(t, view.Media)
	assert.False(t, view.Panel.ShowFeedbackActions)
	assert.Empty(t, view.Panel.AllowedActions)
	assert.Equal(t, "idle", view.LockState)
}

func TestAdminApproveForwardsToClient(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPost, "/api/review/v1/submissions/submission-1/review",
		[]byte(`{"action":"approve"}`), "admin-1", "admin")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result reviewhttp.ReviewSubmissionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "SENT_TO_CLIENT", result.Status)
	assert.Equal(t, []string{}, result.Reasons)

	rr = doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "admin-1", "admin")
	require.Equal(t, http.StatusOK, rr.Code)
	var view reviewhttp.SubmissionViewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "SENT_TO_CLIENT", view.Status)
	assert.Equal(t, "settling", view.LockState)
	require.Len(t, view.Toasts, 1)
	assert.Equal(t, reviewhttp.ToastDTO{Level: "success", Message: "Submission sent to client"}, view.Toasts[0])

	rr = doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "client-1", "client")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.False(t, view.MediaHidden)
	assert.Len(t, view.Media, 1)
	assert.Equal(t, []string{"approve", "request_changes"}, view.Panel.AllowedActions)
}

func TestChangeRequestWithoutFeedbackIsRejected(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPost, "/api/review/v1/submissions/submission-1/review",
		[]byte(`{"action":"request_revision","feedback":"  ","reasons":[]}`), "admin-1", "admin")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "validation_failed", decodeError(t, rr).Code)
}

func TestReviewRejectsMalformedBody(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPost, "/api/review/v1/submissions/submission-1/review",
		[]byte(`{"action":`), "admin-1", "admin")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_json", decodeError(t, rr).Code)
}

func TestClientCannotActBeforeForwarding(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPost, "/api/review/v1/submissions/submission-1/review",
		[]byte(`{"action":"approve"}`), "client-1", "client")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "action_not_available", decodeError(t, rr).Code)
}

func TestUnknownSubmissionIsNotFound(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodGet, "/api/review/v1/submissions/missing/view", nil, "admin-1", "admin")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostingLinkRequiresValidURL(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPut, "/api/review/v1/submissions/submission-1/posting-link",
		[]byte(`{"posting_link":"not a link"}`), "admin-1", "admin")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCloseSession(t *testing.T) {
	server := newTestServer(t, Options{})
	rr := doRequest(server, http.MethodGet, "/api/review/v1/submissions/submission-1/view", nil, "admin-1", "admin")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(server, http.MethodDelete, "/api/review/v1/submissions/submission-1/session", nil, "admin-1", "admin")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(server, http.MethodDelete, "/api/review/v1/submissions/submission-1/session", nil, "admin-1", "admin")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPitchReviewUsesLegacyEndpointForNormalCampaigns(t *testing.T) {
	server := newTestServer(t, Options{})

	rr := doRequest(server, http.MethodPost, "/api/review/v1/pitches/pitch-1/review",
		[]byte(`{"action":"approve"}`), "admin-1", "admin")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result reviewhttp.ReviewPitchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "approve", result.Action)
	assert.Equal(t, "v2", result.APIVersion)
}

func TestSwaggerMountedOnlyWhenEnabled(t *testing.T) {
	disabled := newTestServer(t, Options{})
	rr := doRequest(disabled, http.MethodGet, "/swagger/doc.json", nil, "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	enabled := newTestServer(t, Options{Swagger: true})
	rr = doRequest(enabled, http.MethodGet, "/swagger/doc.json", nil, "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/review/v1/submissions/{submission_id}/view")
}

type upstreamFailure struct{ message string }

func (e upstreamFailure) Error() string       { return "platform api returned 500" }
func (e upstreamFailure) UserMessage() string { return e.message }

func TestUpstreamErrorsKeepServerMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeReviewDomainError(rr, errors.Join(errors.New("review submission"), upstreamFailure{message: "Submission is locked"}))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, reviewhttp.ErrorResponse{Code: "platform_api_error", Message: "Submission is locked"}, decodeError(t, rr))
}
