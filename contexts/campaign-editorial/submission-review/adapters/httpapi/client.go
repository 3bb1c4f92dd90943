// Package httpapi is the REST client for the platform API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	pathAdminApprove      = "/api/submissions/v4/approve"
	pathClientApprove     = "/api/submissions/v4/approve/client"
	pathPostingLink       = "/api/submissions/v4/posting-link"
	pathPostingLinkReview = "/api/submissions/v4/posting-link/approve"
)

// APIError is a non-2xx response. Message is the server's own text when it
// sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("platform api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("platform api returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage is shown verbatim in error toasts.
func (e *APIError) UserMessage() string {
	return e.Message
}

type Options struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ ports.ReviewAPI = (*Client)(nil)

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("platform api base url %q is invalid", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL: base.String(),
		token:   strings.TrimSpace(opts.Token),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		logger:  application.ResolveLogger(opts.Logger),
	}, nil
}

func (c *Client) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var out submissionDTO
	err := c.do(ctx, http.MethodGet, "/api/submissions/v4/"+url.PathEscape(submissionID), nil, &out)
	if err != nil {
		return entities.Submission{}, notFound(err, domainerrors.ErrSubmissionNotFound)
	}
	return out.toEntity(), nil
}

func (c *Client) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var out campaignDTO
	if err := c.do(ctx, http.MethodGet, "/api/campaigns/"+url.PathEscape(campaignID), nil, &out); err != nil {
		return entities.Campaign{}, err
	}
	return out.toEntity(), nil
}

func (c *Client) GetPitch(ctx context.Context, pitchID string) (entities.Pitch, error) {
	var out pitchDTO
	if err := c.do(ctx, http.MethodGet, "/api/pitches/"+url.PathEscape(pitchID), nil, &out); err != nil {
		return entities.Pitch{}, err
	}
	return out.toEntity(), nil
}

func (c *Client) ApproveV4Submission(ctx context.Context, req ports.AdminReviewRequest) error {
	return c.do(ctx, http.MethodPost, pathAdminApprove, adminReviewBody{
		SubmissionID: req.SubmissionID,
		Action:       req.Action,
		Feedback:     req.Feedback,
		Reasons:      nonNil(req.Reasons),
		Caption:      req.Caption,
	}, nil)
}

func (c *Client) ClientReviewV4Submission(ctx context.Context, req ports.ClientReviewRequest) error {
	return c.do(ctx, http.MethodPost, pathClientApprove, clientReviewBody{
		SubmissionID: req.SubmissionID,
		Action:       req.Action,
		Feedback:     req.Feedback,
		Reasons:      nonNil(req.Reasons),
	}, nil)
}

func (c *Client) UpdatePostingLink(ctx context.Context, req ports.PostingLinkRequest) error {
	return c.do(ctx, http.MethodPut, pathPostingLink, postingLinkBody{
		SubmissionID: req.SubmissionID,
		PostingLink:  req.PostingLink,
	}, nil)
}

func (c *Client) ReviewPostingLink(ctx context.Context, req ports.PostingLinkReviewRequest) error {
	return c.do(ctx, http.MethodPost, pathPostingLinkReview, postingLinkReviewBody{
		SubmissionID: req.SubmissionID,
		Action:       req.Action,
		Reasons:      nonNil(req.Reasons),
	}, nil)
}

// ReviewPitch posts to /api/pitches/{version}/review; version is v2 or v3.
func (c *Client) ReviewPitch(ctx context.Context, version string, req ports.PitchReviewRequest) error {
	switch version {
	case "v2", "v3":
	default:
		return fmt.Errorf("unsupported pitch api version %q", version)
	}
	return c.do(ctx, http.MethodPost, "/api/pitches/"+version+"/review", pitchReviewBody{
		PitchID: req.PitchID,
		Action:  req.Action,
		Reason:  req.Reason,
	}, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	startedAt := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("platform api request failed",
			"event", "platform_api_request_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "adapter",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err.Error(),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("platform api request completed",
		"event", "platform_api_request_completed",
		"module", "campaign-editorial/submission-review",
		"layer", "adapter",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(body.Error)
		}
	}
	return apiErr
}

func notFound(err error, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", sentinel, apiErr.Error())
	}
	return err
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
