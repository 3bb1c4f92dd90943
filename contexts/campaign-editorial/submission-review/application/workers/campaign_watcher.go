package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/reconciliation"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultWatchRefreshDelay = 100 * time.Millisecond
	defaultWatchDedupTTL     = 5 * time.Second
	watchDedupSize           = 4096
	watchRefreshTimeout      = 10 * time.Second
)

// CampaignWatcher keeps a shared submission cache fresh for whole campaigns.
// Every realtime event schedules one revalidation of its submission after
// RefreshDelay; bursts for the same submission coalesce and frames repeated
// by more than one transport are dropped while that revalidation is pending.
type CampaignWatcher struct {
	Channel      ports.RealtimeChannel
	Cache        ports.SubmissionCache
	Scheduler    ports.Scheduler
	Campaigns    []string
	RefreshDelay time.Duration
	DedupTTL     time.Duration
	Logger       *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	started bool
	rooms   []string
	unsubs  []func()
	pending map[string]*scheduledRefresh
	seen    *expirable.LRU[string, struct{}]
}

type scheduledRefresh struct {
	timer  ports.Timer
	frames []string
}

func (w *CampaignWatcher) Start(ctx context.Context) error {
	if w.Channel == nil {
		return domainerrors.ErrChannelUnavailable
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	ttl := w.DedupTTL
	if ttl <= 0 {
		ttl = defaultWatchDedupTTL
	}
	w.seen = expirable.NewLRU[string, struct{}](watchDedupSize, nil, ttl)
	w.pending = make(map[string]*scheduledRefresh)
	w.ctx = ctx

	for _, campaignID := range w.Campaigns {
		if strings.TrimSpace(campaignID) == "" {
			continue
		}
		room := events.CampaignRoom(campaignID)
		if err := w.Channel.Join(ctx, room); err != nil {
			w.releaseLocked(ctx)
			return err
		}
		w.rooms = append(w.rooms, room)
	}
	for _, name := range events.ReviewEvents {
		w.unsubs = append(w.unsubs, w.Channel.Subscribe(name, w.handle))
	}
	w.started = true

	application.ResolveLogger(w.Logger).Info("campaign watcher started",
		"event", "campaign_watcher_started",
		"module", "campaign-editorial/submission-review",
		"layer", "worker",
		"campaigns", len(w.rooms),
	)
	return nil
}

func (w *CampaignWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return nil
	}
	w.started = false
	return w.releaseLocked(ctx)
}

// Pending counts submissions with a revalidation scheduled.
func (w *CampaignWatcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *CampaignWatcher) releaseLocked(ctx context.Context) error {
	for _, unsubscribe := range w.unsubs {
		unsubscribe()
	}
	w.unsubs = nil
	for id, scheduled := range w.pending {
		scheduled.timer.Stop()
		delete(w.pending, id)
	}
	var firstErr error
	for _, room := range w.rooms {
		if err := w.Channel.Leave(ctx, room); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.rooms = nil
	return firstErr
}

func (w *CampaignWatcher) handle(evt events.Realtime) {
	logger := application.ResolveLogger(w.Logger)
	var payload struct {
		SubmissionID string `json:"submissionId"`
	}
	if err := json.Unmarshal(evt.Data, &payload); err != nil || strings.TrimSpace(payload.SubmissionID) == "" {
		logger.Warn("realtime event without submission skipped",
			"event", "campaign_watcher_event_skipped",
			"module", "campaign-editorial/submission-review",
			"layer", "worker",
			"realtime_event", evt.Event,
		)
		return
	}
	submissionID := strings.TrimSpace(payload.SubmissionID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	key := hashFrame(evt)
	if w.seen.Contains(key) {
		logger.Debug("duplicate realtime frame dropped",
			"event", "campaign_watcher_duplicate",
			"module", "campaign-editorial/submission-review",
			"layer", "worker",
			"submission_id", submissionID,
		)
		return
	}
	w.seen.Add(key, struct{}{})

	if scheduled, ok := w.pending[submissionID]; ok {
		scheduled.frames = append(scheduled.frames, key)
		return
	}
	w.pending[submissionID] = &scheduledRefresh{
		frames: []string{key},
		timer: w.scheduler().AfterFunc(w.refreshDelay(), func() {
			w.revalidate(submissionID)
		}),
	}
}

func (w *CampaignWatcher) revalidate(submissionID string) {
	w.mu.Lock()
	scheduled, ok := w.pending[submissionID]
	if !ok {
		w.mu.Unlock()
		return
	}
	delete(w.pending, submissionID)
	// Frames seen from here on describe changes this fetch may miss.
	for _, key := range scheduled.frames {
		w.seen.Remove(key)
	}
	ctx := w.ctx
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, watchRefreshTimeout)
	defer cancel()
	logger := application.ResolveLogger(w.Logger)
	if err := w.Cache.Revalidate(ctx, submissionID); err != nil {
		logger.Error("submission revalidation failed",
			"event", "campaign_watcher_revalidate_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "worker",
			"submission_id", submissionID,
			"error", err.Error(),
		)
		return
	}
	logger.Info("submission revalidated",
		"event", "campaign_watcher_revalidated",
		"module", "campaign-editorial/submission-review",
		"layer", "worker",
		"submission_id", submissionID,
	)
}

func (w *CampaignWatcher) scheduler() ports.Scheduler {
	if w.Scheduler == nil {
		return reconciliation.SystemScheduler{}
	}
	return w.Scheduler
}

func (w *CampaignWatcher) refreshDelay() time.Duration {
	if w.RefreshDelay <= 0 {
		return defaultWatchRefreshDelay
	}
	return w.RefreshDelay
}

func hashFrame(evt events.Realtime) string {
	sum := sha256.New()
	sum.Write([]byte(evt.Event))
	sum.Write([]byte{0})
	sum.Write(evt.Data)
	return hex.EncodeToString(sum.Sum(nil))
}
