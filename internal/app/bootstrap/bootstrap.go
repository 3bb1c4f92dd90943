package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	submissionreview "reviewdesk/contexts/campaign-editorial/submission-review"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/httpapi"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/memory"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/realtime"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/rediscache"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/workers"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
	"reviewdesk/internal/platform/cache"
	"reviewdesk/internal/platform/config"
	"reviewdesk/internal/platform/httpserver"
	"reviewdesk/internal/platform/messaging"

	"github.com/redis/go-redis/v9"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server  *httpserver.Server
	module  submissionreview.Module
	closers []func() error
	logger  *slog.Logger
}

type WorkerApp struct {
	watcher *workers.CampaignWatcher
	done    <-chan struct{}
	closers []func() error
	logger  *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	app := &APIApp{logger: logger}

	bus := messaging.NewBus(logger)
	api, err := buildReviewAPI(cfg, bus, logger)
	if err != nil {
		return nil, err
	}

	var client *redis.Client
	if cfg.EnableRedisCache || (cfg.RealtimeURL == "" && cfg.RedisAddr != "") {
		client, err = cache.ConnectRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
	}

	channel, closeChannel, err := buildChannel(ctx, cfg, bus, client, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.closers = append(app.closers, closeChannel)

	var submissions ports.SubmissionCache = memory.NewStore(nil, api)
	if cfg.EnableRedisCache {
		submissions = rediscache.New(rediscache.NewRedisKV(client), api, cfg.CacheTTL)
	}

	module, err := submissionreview.NewModule(submissionreview.Dependencies{
		API:             api,
		Cache:           submissions,
		Channel:         channel,
		Notifier:        memory.LogNotifier{Logger: logger},
		Logger:          logger,
		SessionCapacity: cfg.SessionCapacity,
		ViewMemoSize:    cfg.ViewMemoSize,
		SettleDelay:     cfg.SettleDelay,
		EchoWindow:      cfg.EchoWindow,
		RefreshDelay:    cfg.RefreshDelay,
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.module = module

	opts := httpserver.Options{Swagger: cfg.EnableSwagger}
	if cfg.EnableRealtimeGateway {
		opts.Realtime = messaging.WebsocketHandler(bus, logger)
	}
	app.server = httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), opts)
	return app, nil
}

// BuildWorker wires the campaign watcher. It keeps the shared redis cache
// fresh, so both the platform API and redis are required.
func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if cfg.PlatformAPIURL == "" {
		return nil, errors.New("PLATFORM_API_URL is required")
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is required")
	}
	if len(cfg.WatchCampaigns) == 0 {
		return nil, errors.New("WATCH_CAMPAIGNS is required")
	}

	api, err := buildReviewAPI(cfg, nil, logger)
	if err != nil {
		return nil, err
	}
	client, err := cache.ConnectRedis(ctx, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	app := &WorkerApp{logger: logger, closers: []func() error{client.Close}}

	var channel ports.RealtimeChannel
	if cfg.RealtimeURL != "" {
		socket, err := realtime.DialWebsocket(ctx, cfg.RealtimeURL, authHeader(cfg.PlatformAPIToken), logger)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		channel, app.done = socket, socket.Done()
		app.closers = append(app.closers, socket.Close)
	} else {
		pubsub := realtime.NewRedisChannel(ctx, client, logger)
		channel = pubsub
		app.closers = append(app.closers, pubsub.Close)
	}

	app.watcher = &workers.CampaignWatcher{
		Channel:      channel,
		Cache:        rediscache.New(rediscache.NewRedisKV(client), api, cfg.CacheTTL),
		Campaigns:    cfg.WatchCampaigns,
		RefreshDelay: cfg.RefreshDelay,
		Logger:       logger,
	}
	return app, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.module.Sessions != nil {
		a.module.Sessions.CloseAll()
	}
	return closeAll(a.closers)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.watcher.Start(ctx); err != nil {
		return err
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"campaigns", len(w.watcher.Campaigns),
	)

	var err error
	select {
	case <-ctx.Done():
	case <-w.done:
		err = realtime.ErrClosed
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(err, w.watcher.Stop(stopCtx))
}

func (w *WorkerApp) Close() error {
	return closeAll(w.closers)
}

// buildReviewAPI returns the platform REST client, or an in-process API
// seeded with demo data when no platform URL is configured.
func buildReviewAPI(cfg config.Config, bus *messaging.Bus, logger *slog.Logger) (ports.ReviewAPI, error) {
	if cfg.PlatformAPIURL != "" {
		client, err := httpapi.New(httpapi.Options{
			BaseURL:       cfg.PlatformAPIURL,
			Token:         cfg.PlatformAPIToken,
			Timeout:       cfg.APITimeout,
			RatePerSecond: cfg.APIRatePerSecond,
			Burst:         cfg.APIRateBurst,
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	logger.Warn("PLATFORM_API_URL not set, serving demo data in process",
		"event", "bootstrap_demo_platform_api",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	submissions, campaigns, pitches := demoSeed()
	api := memory.NewPlatformAPI(submissions, campaigns, pitches)
	api.Logger = logger
	if bus != nil {
		api.Publisher = bus
	}
	return api, nil
}

// buildChannel picks the realtime source: the platform socket, redis
// pub/sub, or the in-process bus.
func buildChannel(
	ctx context.Context,
	cfg config.Config,
	bus *messaging.Bus,
	client *redis.Client,
	logger *slog.Logger,
) (ports.RealtimeChannel, func() error, error) {
	switch {
	case cfg.RealtimeURL != "":
		socket, err := realtime.DialWebsocket(ctx, cfg.RealtimeURL, authHeader(cfg.PlatformAPIToken), logger)
		if err != nil {
			return nil, nil, err
		}
		return socket, socket.Close, nil
	case client != nil && cfg.RedisAddr != "":
		pubsub := realtime.NewRedisChannel(ctx, client, logger)
		return pubsub, pubsub.Close, nil
	default:
		conn := bus.Connect()
		return conn, func() error {
			conn.Close()
			return nil
		}, nil
	}
}

func demoSeed() ([]entities.Submission, []entities.Campaign, []entities.Pitch) {
	now := time.Now().UTC()
	return []entities.Submission{
			{
				ID:         "demo-submission-1",
				CampaignID: "demo-campaign-1",
				Status:     entities.SubmissionStatusPendingReview,
				Video:      []entities.MediaItem{{ID: "demo-video-1", URL: "https://cdn.example.com/demo-video-1.mp4"}},
				UpdatedAt:  now,
			},
			{
				ID:          "demo-submission-2",
				CampaignID:  "demo-campaign-2",
				Status:      entities.SubmissionStatusPendingReview,
				RawFootages: []entities.MediaItem{{ID: "demo-raw-1", URL: "https://cdn.example.com/demo-raw-1.mov"}},
				UpdatedAt:   now,
			},
		}, []entities.Campaign{
			{ID: "demo-campaign-1", Type: entities.CampaignTypeNormal},
			{ID: "demo-campaign-2", Type: entities.CampaignTypeUGC, SubmissionVersion: "v4"},
		}, []entities.Pitch{
			{ID: "demo-pitch-1", CampaignID: "demo-campaign-2", CreatorID: "demo-creator-1", Status: entities.PitchStatusPendingReview},
		}
}

func authHeader(token string) http.Header {
	header := http.Header{}
	if strings.TrimSpace(token) != "" {
		header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}
	return header
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
