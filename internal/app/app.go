package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sqmw/repofolio/internal/config"
	"github.com/sqmw/repofolio/internal/github"
	"github.com/sqmw/repofolio/internal/loader"
	"github.com/sqmw/repofolio/internal/prefs"
	"github.com/sqmw/repofolio/internal/repocache"
	"github.com/sqmw/repofolio/internal/snapshot"
	"github.com/sqmw/repofolio/internal/state"
	"github.com/sqmw/repofolio/internal/storage"
	"github.com/sqmw/repofolio/internal/ui"
)

// Runtime holds the components shared by the TUI and the CLI commands.
type Runtime struct {
	Config    config.Config
	Logger    *zap.Logger
	Storage   storage.Store
	Cache     *repocache.Cache
	Snapshots *snapshot.Store
	Loader    *loader.Loader
	Prefs     prefs.Prefs

	closeStorage func() error
}

// Open wires storage, cache, snapshot, client and loader from cfg.
func Open(cfg config.Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, closeStorage, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}

	client, err := github.NewClient(cfg.APIBase)
	if err != nil {
		_ = closeStorage()
		return nil, fmt.Errorf("init github client: %w", err)
	}

	cache := repocache.New(store, cfg.CacheTTL, repocache.WithLogger(logger))
	userPrefs, err := prefs.Load(store)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", zap.Error(err))
	}

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Storage:   store,
		Cache:     cache,
		Snapshots: snapshot.New(store, logger),
		Loader: loader.New(client, cache, loader.Options{
			User:    cfg.User,
			PerPage: cfg.PerPage,
			Exclude: cfg.Exclude,
			Logger:  logger,
		}),
		Prefs:        userPrefs,
		closeStorage: closeStorage,
	}, nil
}

// Close releases the storage backend.
func (r *Runtime) Close() error {
	if r.closeStorage == nil {
		return nil
	}
	return r.closeStorage()
}

// NewStore returns a state store seeded with the saved preferences and
// subscribed to persist later preference changes.
func (r *Runtime) NewStore() *state.Store {
	store := state.New(state.Default())
	store.Set(r.Prefs.Patches()...)
	persister := prefs.NewPersister(r.Storage, r.Prefs, r.Logger)
	store.Subscribe(persister.Listen)
	return store
}

// Run boots the TUI until the user quits or ctx is cancelled. When the
// config sets refresh_interval, a poller reloads in the background.
func Run(ctx context.Context, rt *Runtime) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var pollerDone <-chan struct{}
	uiOpts := ui.Options{
		Context:        ctx,
		Store:          rt.NewStore(),
		Loader:         rt.Loader,
		Snapshots:      rt.Snapshots,
		Logger:         rt.Logger,
		User:           rt.Config.User,
		TopLimit:       rt.Config.TopLimit,
		LanguageLimit:  rt.Config.LanguageLimit,
		SearchDebounce: rt.Config.SearchDebounce,
		OnStart: func(send func(tea.Msg)) {
			if rt.Config.RefreshInterval <= 0 {
				return
			}
			deliver := func(res loader.Result, err error) {
				send(ui.LoadedMsg{Result: res, Err: err})
			}
			pollerDone = StartPoller(ctx, rt.Loader.Load, deliver, rt.Config.RefreshInterval, rt.Logger)
		},
	}

	rt.Logger.Info("starting tui",
		zap.String("user", rt.Config.User),
		zap.String("storage", rt.Config.Storage),
		zap.Duration("refresh_interval", rt.Config.RefreshInterval))

	err := ui.Run(uiOpts)
	cancel()
	if pollerDone != nil {
		<-pollerDone
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
