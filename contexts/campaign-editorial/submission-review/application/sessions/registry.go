// Package sessions keeps one reconciliation controller per open
// (viewer, submission) pair. The registry is size bounded; evicting a
// session stops its controller so no listener outlives it.
package sessions

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/reconciliation"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCapacity = 256

type Options struct {
	Capacity     int
	SettleDelay  time.Duration
	EchoWindow   time.Duration
	RefreshDelay time.Duration
	Scheduler    ports.Scheduler
	// Notifier also receives every session toast, e.g. for logging.
	Notifier ports.Notifier
	NewInbox func() ports.ToastInbox
	Logger   *slog.Logger
}

type Session struct {
	Viewer       entities.Viewer
	SubmissionID string
	CampaignID   string
	OpenedAt     time.Time

	controller *reconciliation.Controller
	inbox      ports.ToastInbox
}

func (s *Session) RunLocalAction(ctx context.Context, fn func(context.Context) error) error {
	return s.controller.RunLocalAction(ctx, fn)
}

func (s *Session) State() reconciliation.LockState {
	return s.controller.State()
}

// Notify queues a toast for the viewer's next read.
func (s *Session) Notify(level ports.ToastLevel, message string) {
	if s.inbox != nil {
		s.inbox.Notify(level, message)
	}
}

// Toasts drains the notifications raised since the last call.
func (s *Session) Toasts() []ports.Toast {
	if s.inbox == nil {
		return nil
	}
	return s.inbox.Drain()
}

type Registry struct {
	channel ports.RealtimeChannel
	cache   ports.SubmissionCache
	opts    Options

	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
}

func NewRegistry(channel ports.RealtimeChannel, cache ports.SubmissionCache, opts Options) (*Registry, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = defaultCapacity
	}
	r := &Registry{channel: channel, cache: cache, opts: opts}
	sessions, err := lru.NewWithEvict[string, *Session](opts.Capacity, r.onEvict)
	if err != nil {
		return nil, err
	}
	r.sessions = sessions
	return r, nil
}

// Open returns the viewer's session for submission, starting one when
// needed. A session whose campaign changed is rebound in place.
func (r *Registry) Open(ctx context.Context, viewer entities.Viewer, submission entities.Submission) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey(viewer.UserID, submission.ID)
	if existing, ok := r.sessions.Get(key); ok {
		if existing.CampaignID == submission.CampaignID {
			return existing, nil
		}
		if err := existing.controller.Rebind(ctx, submission.ID, submission.CampaignID); err != nil {
			return nil, err
		}
		existing.CampaignID = submission.CampaignID
		return existing, nil
	}

	var inbox ports.ToastInbox
	if r.opts.NewInbox != nil {
		inbox = r.opts.NewInbox()
	}
	controller := reconciliation.New(reconciliation.Dependencies{
		Channel:   r.channel,
		Cache:     r.cache,
		Notifier:  fanOut{inbox, r.opts.Notifier},
		Scheduler: r.opts.Scheduler,
		Logger:    r.opts.Logger,
	}, reconciliation.Config{
		SubmissionID: submission.ID,
		CampaignID:   submission.CampaignID,
		Viewer:       viewer,
		SettleDelay:  r.opts.SettleDelay,
		EchoWindow:   r.opts.EchoWindow,
		RefreshDelay: r.opts.RefreshDelay,
	})
	if err := controller.Start(ctx); err != nil {
		return nil, err
	}
	session := &Session{
		Viewer:       viewer,
		SubmissionID: submission.ID,
		CampaignID:   submission.CampaignID,
		OpenedAt:     time.Now().UTC(),
		controller:   controller,
		inbox:        inbox,
	}
	r.sessions.Add(key, session)

	application.ResolveLogger(r.opts.Logger).Debug("review session opened",
		"event", "review_session_opened",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"submission_id", submission.ID,
		"user_id", viewer.UserID,
	)
	return session, nil
}

func (r *Registry) Get(userID string, submissionID string) (*Session, bool) {
	return r.sessions.Get(sessionKey(userID, submissionID))
}

// Close stops and forgets one session.
func (r *Registry) Close(userID string, submissionID string) bool {
	return r.sessions.Remove(sessionKey(userID, submissionID))
}

func (r *Registry) CloseAll() {
	r.sessions.Purge()
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

func (r *Registry) onEvict(_ string, session *Session) {
	if err := session.controller.Stop(context.Background()); err != nil {
		application.ResolveLogger(r.opts.Logger).Warn("review session stop failed",
			"event", "review_session_stop_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"submission_id", session.SubmissionID,
			"error", err.Error(),
		)
	}
}

func sessionKey(userID string, submissionID string) string {
	return strings.TrimSpace(userID) + "|" + strings.TrimSpace(submissionID)
}

type fanOut [2]ports.Notifier

func (f fanOut) Notify(level ports.ToastLevel, message string) {
	for _, notifier := range f {
		if notifier != nil {
			notifier.Notify(level, message)
		}
	}
}
