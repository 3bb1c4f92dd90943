// Package reconciliation merges a viewer's own optimistic actions with events
// arriving over the realtime channel, so an echo of the viewer's own change
// never triggers a second refresh or toast.
package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "reviewdesk/contexts/campaign-editorial/submission-review/application"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	domainerrors "reviewdesk/contexts/campaign-editorial/submission-review/domain/errors"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/shared/events"
)

type LockState string

const (
	StateIdle     LockState = "idle"
	StatePending  LockState = "pending"
	StateSettling LockState = "settling"
)

const (
	DefaultSettleDelay    = 200 * time.Millisecond
	DefaultEchoWindow     = 500 * time.Millisecond
	DefaultRefreshDelay   = 100 * time.Millisecond
	defaultRefreshTimeout = 10 * time.Second
)

type Config struct {
	SubmissionID string
	CampaignID   string
	Viewer       entities.Viewer

	// SettleDelay is when the forced refresh after a local action runs.
	SettleDelay time.Duration
	// EchoWindow is the total time after a local action during which every
	// inbound event is swallowed.
	EchoWindow   time.Duration
	RefreshDelay time.Duration
}

type Dependencies struct {
	Channel   ports.RealtimeChannel
	Cache     ports.SubmissionCache
	Notifier  ports.Notifier
	Scheduler ports.Scheduler
	Logger    *slog.Logger
}

type Controller struct {
	deps Dependencies

	mu      sync.Mutex
	cfg     Config
	baseCtx context.Context
	started bool
	// generation invalidates handlers and timers of a previous binding.
	generation   uint64
	unsubscribes []func()
	room         string

	state           LockState
	inFlight        int
	lockTimer       ports.Timer
	lockSeq         uint64
	refreshOnSettle bool

	refreshTimer ports.Timer
	refreshSeq   uint64
	pendingToast *toast
}

type toast struct {
	level   ports.ToastLevel
	message string
}

func New(deps Dependencies, cfg Config) *Controller {
	if deps.Scheduler == nil {
		deps.Scheduler = SystemScheduler{}
	}
	return &Controller{
		deps:    deps,
		cfg:     normalizeConfig(cfg),
		baseCtx: context.Background(),
		state:   StateIdle,
	}
}

func normalizeConfig(cfg Config) Config {
	cfg.SubmissionID = strings.TrimSpace(cfg.SubmissionID)
	cfg.CampaignID = strings.TrimSpace(cfg.CampaignID)
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.EchoWindow < cfg.SettleDelay {
		cfg.EchoWindow = DefaultEchoWindow
		if cfg.EchoWindow < cfg.SettleDelay {
			cfg.EchoWindow = cfg.SettleDelay
		}
	}
	if cfg.RefreshDelay <= 0 {
		cfg.RefreshDelay = DefaultRefreshDelay
	}
	return cfg
}

func (c *Controller) State() LockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SubmissionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.SubmissionID
}

// Start joins the campaign room and registers one handler per review event.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	if c.deps.Channel == nil {
		c.mu.Unlock()
		return domainerrors.ErrChannelUnavailable
	}
	c.generation++
	generation := c.generation
	room := events.CampaignRoom(c.cfg.CampaignID)
	c.mu.Unlock()

	if err := c.deps.Channel.Join(ctx, room); err != nil {
		return fmt.Errorf("join %s: %w", room, err)
	}
	unsubscribes := make([]func(), 0, len(events.ReviewEvents))
	for _, name := range events.ReviewEvents {
		unsubscribes = append(unsubscribes, c.deps.Channel.Subscribe(name, func(evt events.Realtime) {
			c.handleEvent(generation, evt)
		}))
	}

	c.mu.Lock()
	c.baseCtx = context.WithoutCancel(ctx)
	c.started = true
	c.room = room
	c.unsubscribes = unsubscribes
	c.mu.Unlock()

	c.logger().Debug("reconciliation started",
		"event", "reconciliation_started",
		"module", "campaign-editorial/submission-review",
		"layer", "application",
		"submission_id", c.SubmissionID(),
		"room", room,
	)
	return nil
}

// Stop removes every handler, leaves the room and cancels pending timers.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	unsubscribes := c.unsubscribes
	room := c.room
	c.unsubscribes = nil
	c.started = false
	c.generation++
	c.stopLockTimerLocked()
	c.stopRefreshTimerLocked()
	c.state = StateIdle
	c.inFlight = 0
	c.refreshOnSettle = false
	c.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	if err := c.deps.Channel.Leave(ctx, room); err != nil {
		return fmt.Errorf("leave %s: %w", room, err)
	}
	return nil
}

// Rebind re-subscribes when the submission or campaign identity changes.
func (c *Controller) Rebind(ctx context.Context, submissionID string, campaignID string) error {
	submissionID = strings.TrimSpace(submissionID)
	campaignID = strings.TrimSpace(campaignID)

	c.mu.Lock()
	same := c.cfg.SubmissionID == submissionID && c.cfg.CampaignID == campaignID
	wasStarted := c.started
	c.mu.Unlock()
	if same {
		return nil
	}

	if err := c.Stop(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg.SubmissionID = submissionID
	c.cfg.CampaignID = campaignID
	c.mu.Unlock()
	if !wasStarted {
		return nil
	}
	return c.Start(ctx)
}

// RunLocalAction holds the lock while fn runs and through the settle window
// after it. A successful fn gets a forced refresh at SettleDelay. An action
// that outlives Stop or Rebind leaves the new binding untouched.
func (c *Controller) RunLocalAction(ctx context.Context, fn func(context.Context) error) error {
	generation, locked := c.beginLocalAction()
	succeeded := false
	defer func() {
		if locked {
			c.endLocalAction(generation, succeeded)
		}
	}()

	err := fn(ctx)
	succeeded = err == nil
	return err
}

func (c *Controller) beginLocalAction() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return 0, false
	}
	c.stopLockTimerLocked()
	c.inFlight++
	c.state = StatePending
	return c.generation, true
}

func (c *Controller) endLocalAction(generation uint64, succeeded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || generation != c.generation {
		return
	}
	if c.inFlight > 0 {
		c.inFlight--
	}
	if succeeded {
		c.refreshOnSettle = true
	}
	if c.inFlight > 0 {
		return
	}
	c.state = StateSettling
	c.armLockTimerLocked(c.cfg.SettleDelay, c.onSettled)
}

func (c *Controller) onSettled(seq uint64) {
	c.mu.Lock()
	if !c.started || seq != c.lockSeq || c.state != StateSettling {
		c.mu.Unlock()
		return
	}
	refresh := c.refreshOnSettle
	c.refreshOnSettle = false
	submissionID := c.cfg.SubmissionID
	ctx := c.baseCtx
	c.armLockTimerLocked(c.cfg.EchoWindow-c.cfg.SettleDelay, c.onEchoWindowClosed)
	c.mu.Unlock()

	if refresh {
		c.refresh(ctx, submissionID, nil)
	}
}

func (c *Controller) onEchoWindowClosed(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || seq != c.lockSeq || c.state != StateSettling {
		return
	}
	c.lockTimer = nil
	c.state = StateIdle
}

func (c *Controller) armLockTimerLocked(d time.Duration, fire func(uint64)) {
	c.stopLockTimerLocked()
	c.lockSeq++
	seq := c.lockSeq
	c.lockTimer = c.deps.Scheduler.AfterFunc(d, func() { fire(seq) })
}

func (c *Controller) stopLockTimerLocked() {
	c.lockSeq++
	if c.lockTimer != nil {
		c.lockTimer.Stop()
		c.lockTimer = nil
	}
}

func (c *Controller) stopRefreshTimerLocked() {
	c.refreshSeq++
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	c.pendingToast = nil
}

func (c *Controller) handleEvent(generation uint64, evt events.Realtime) {
	decoded, err := decodeEvent(evt)
	if err != nil {
		c.logger().Warn("realtime event decode failed",
			"event", "reconciliation_event_decode_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"realtime_event", evt.Event,
			"error", err.Error(),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || generation != c.generation {
		return
	}
	if decoded.SubmissionID != "" && decoded.SubmissionID != c.cfg.SubmissionID {
		return
	}
	ownAction := decoded.UserID != "" && decoded.UserID == c.cfg.Viewer.UserID
	if c.state != StateIdle || ownAction {
		c.logger().Debug("realtime event suppressed",
			"event", "reconciliation_event_suppressed",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"realtime_event", evt.Event,
			"submission_id", c.cfg.SubmissionID,
			"lock_state", string(c.state),
			"own_action", ownAction,
		)
		return
	}

	message := toastFor(c.cfg.Viewer.Role, decoded)
	c.pendingToast = &message
	if c.refreshTimer != nil {
		return
	}
	c.refreshSeq++
	seq := c.refreshSeq
	c.refreshTimer = c.deps.Scheduler.AfterFunc(c.cfg.RefreshDelay, func() { c.onRefreshDue(seq) })
}

func (c *Controller) onRefreshDue(seq uint64) {
	c.mu.Lock()
	if seq != c.refreshSeq || !c.started {
		c.mu.Unlock()
		return
	}
	c.refreshTimer = nil
	pending := c.pendingToast
	c.pendingToast = nil
	if c.state != StateIdle {
		// A local action started meanwhile; its own settle refresh covers it.
		c.mu.Unlock()
		return
	}
	submissionID := c.cfg.SubmissionID
	ctx := c.baseCtx
	c.mu.Unlock()

	c.refresh(ctx, submissionID, pending)
}

func (c *Controller) refresh(ctx context.Context, submissionID string, message *toast) {
	if c.deps.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, defaultRefreshTimeout)
	defer cancel()

	if err := c.deps.Cache.Revalidate(ctx, submissionID); err != nil {
		c.logger().Warn("submission refresh failed",
			"event", "reconciliation_refresh_failed",
			"module", "campaign-editorial/submission-review",
			"layer", "application",
			"submission_id", submissionID,
			"error", err.Error(),
		)
		return
	}
	if message != nil && c.deps.Notifier != nil {
		c.deps.Notifier.Notify(message.level, message.message)
	}
}

func (c *Controller) logger() *slog.Logger {
	return application.ResolveLogger(c.deps.Logger)
}
