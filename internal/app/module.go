// Package app composes the application with fx: config, store, catalog
// client, chat session and the terminal UI.
package app

import (
	"context"
	"net/url"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/appdir"
	"github.com/fyndhq/fynd/internal/auth"
	"github.com/fyndhq/fynd/internal/bus"
	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/chat"
	"github.com/fyndhq/fynd/internal/config"
	"github.com/fyndhq/fynd/internal/favorites"
	"github.com/fyndhq/fynd/internal/lock"
	"github.com/fyndhq/fynd/internal/logging"
	"github.com/fyndhq/fynd/internal/shop"
	"github.com/fyndhq/fynd/internal/status"
	"github.com/fyndhq/fynd/internal/store"
	"github.com/fyndhq/fynd/internal/tui"
	"github.com/fyndhq/fynd/internal/urlstate"
)

// Params holds the resolved startup options passed to the fx module.
type Params struct {
	DataDir string // empty = ~/.fynd
	Console bool   // tee logs to stderr (breaks the TUI; debugging only)
	Link    string // optional shared listing query string to open with
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("app",
		fx.Supply(p),
		fx.Provide(
			provideDataDir,
			provideLogger,
			provideConfig,
			provideBus,
			provideLock,
			provideStore,
			provideCatalog,
			provideShop,
			provideChatSession,
			provideFavorites,
			provideAuth,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

// dataDir is the resolved data directory, distinct from plain string
// params so fx can inject it.
type dataDir string

func provideDataDir(p Params) (dataDir, error) {
	base := appdir.Base(p.DataDir)
	if err := appdir.EnsureDir(base); err != nil {
		return "", err
	}
	if err := appdir.EnsureDir(appdir.LogDir(base)); err != nil {
		return "", err
	}
	return dataDir(base), nil
}

func provideLogger(p Params, base dataDir) (*zap.Logger, error) {
	return logging.New(appdir.LogPath(string(base)), p.Console)
}

func provideConfig(base dataDir, logger *zap.Logger) *config.Config {
	path := appdir.ConfigPath(string(base))
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			if saveErr := config.Save(path, cfg); saveErr != nil {
				logger.Warn("could not write default config", zap.Error(saveErr))
			}
		} else {
			logger.Warn("config unreadable, using defaults", zap.Error(err))
		}
	}
	return cfg
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(base dataDir, logger *zap.Logger) (*lock.Lock, error) {
	l, err := lock.Acquire(string(base))
	if err != nil {
		return nil, err
	}
	logger.Info("instance lock acquired", zap.String("dir", string(base)))
	return l, nil
}

func provideStore(base dataDir, logger *zap.Logger) (*store.DB, error) {
	dbPath := appdir.DBPath(string(base))
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideCatalog(cfg *config.Config) (*catalog.Client, *catalog.Cache) {
	client := catalog.NewClient(cfg.APIBaseURL)
	return client, catalog.NewCache(client, cfg.CacheTTL())
}

func provideShop(p Params, cfg *config.Config, cache *catalog.Cache, logger *zap.Logger) *shop.Controller {
	ctrl := shop.NewController(cache, cfg.PageSize)
	if p.Link != "" {
		values, err := url.ParseQuery(p.Link)
		if err != nil {
			logger.Warn("ignoring malformed shared link", zap.Error(err))
		} else {
			ctrl.SetCriteria(urlstate.Decode(values))
		}
	}
	return ctrl
}

func provideChatSession(cfg *config.Config, db *store.DB, b *bus.Bus, logger *zap.Logger) *chat.Session {
	machine := status.NewMachine(b)
	conn := chat.NewConn(cfg.ChatURL, machine, logger)
	return chat.NewSession(db, conn, chat.EchoStrategy{}, b, logger)
}

func provideFavorites(db *store.DB, b *bus.Bus, logger *zap.Logger) *favorites.Favorites {
	return favorites.New(db, b, logger)
}

func provideAuth(db *store.DB, client *catalog.Client, b *bus.Bus, logger *zap.Logger) *auth.Manager {
	return auth.NewManager(db, client, b, logger)
}

func provideApp(cfg *config.Config, client *catalog.Client, ctrl *shop.Controller, session *chat.Session, favs *favorites.Favorites, authMgr *auth.Manager, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(cfg, client, ctrl, session, favs, authMgr, b, logger)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *tui.App, session *chat.Session, lk *lock.Lock, db *store.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := app.Run(); err != nil {
					logger.Error("ui error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			app.Stop()
			session.Close()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			logger.Info("stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
