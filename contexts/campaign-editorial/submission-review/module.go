package submissionreview

import (
	"log/slog"
	"time"

	httpadapter "reviewdesk/contexts/campaign-editorial/submission-review/adapters/http"
	"reviewdesk/contexts/campaign-editorial/submission-review/adapters/memory"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/commands"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/queries"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/reconciliation"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/sessions"
	"reviewdesk/contexts/campaign-editorial/submission-review/application/viewmodel"
	"reviewdesk/contexts/campaign-editorial/submission-review/domain/entities"
	"reviewdesk/contexts/campaign-editorial/submission-review/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Sessions *sessions.Registry
	Guard    *commands.InFlightGuard
	Store    *memory.Store
}

type Dependencies struct {
	API       ports.ReviewAPI
	Cache     ports.SubmissionCache
	Channel   ports.RealtimeChannel
	Notifier  ports.Notifier
	Scheduler ports.Scheduler
	Logger    *slog.Logger

	SessionCapacity int
	ViewMemoSize    int
	SettleDelay     time.Duration
	EchoWindow      time.Duration
	RefreshDelay    time.Duration
}

// NewModule wires the review use cases. Without a realtime channel no
// sessions are kept and mutations run unbracketed.
func NewModule(deps Dependencies) (Module, error) {
	memo, err := viewmodel.NewMemo(deps.ViewMemoSize)
	if err != nil {
		return Module{}, err
	}
	guard := commands.NewInFlightGuard()

	var registry *sessions.Registry
	if deps.Channel != nil {
		scheduler := deps.Scheduler
		if scheduler == nil {
			scheduler = reconciliation.SystemScheduler{}
		}
		registry, err = sessions.NewRegistry(deps.Channel, deps.Cache, sessions.Options{
			Capacity:     deps.SessionCapacity,
			SettleDelay:  deps.SettleDelay,
			EchoWindow:   deps.EchoWindow,
			RefreshDelay: deps.RefreshDelay,
			Scheduler:    scheduler,
			Notifier:     deps.Notifier,
			NewInbox:     func() ports.ToastInbox { return &memory.Notifier{} },
			Logger:       deps.Logger,
		})
		if err != nil {
			return Module{}, err
		}
	}

	return Module{
		Handler: httpadapter.Handler{
			ReviewSubmission: commands.ReviewSubmissionUseCase{
				API:      deps.API,
				Cache:    deps.Cache,
				Notifier: deps.Notifier,
				Guard:    guard,
				Logger:   deps.Logger,
			},
			PostingLink: commands.PostingLinkUseCase{
				API:      deps.API,
				Cache:    deps.Cache,
				Notifier: deps.Notifier,
				Guard:    guard,
				Logger:   deps.Logger,
			},
			PitchReview: commands.PitchReviewUseCase{
				API:      deps.API,
				Notifier: deps.Notifier,
				Guard:    guard,
				Logger:   deps.Logger,
			},
			Queries: queries.QueryUseCase{
				Cache:   deps.Cache,
				API:     deps.API,
				Memo:    memo,
				Loading: guard,
				Logger:  deps.Logger,
			},
			Sessions: registry,
			Logger:   deps.Logger,
		},
		Sessions: registry,
		Guard:    guard,
	}, nil
}

// NewInMemoryModule serves seeded submissions through api. The store
// fetches through api on a miss.
func NewInMemoryModule(
	seed []entities.Submission,
	api ports.ReviewAPI,
	channel ports.RealtimeChannel,
	scheduler ports.Scheduler,
	logger *slog.Logger,
) (Module, error) {
	store := memory.NewStore(seed, api)
	module, err := NewModule(Dependencies{
		API:       api,
		Cache:     store,
		Channel:   channel,
		Notifier:  memory.LogNotifier{Logger: logger},
		Scheduler: scheduler,
		Logger:    logger,
	})
	if err != nil {
		return Module{}, err
	}
	module.Store = store
	return module, nil
}
