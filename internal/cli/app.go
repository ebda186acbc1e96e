// Package cli wires configuration, persistence and brightness detection
// for the dimmer commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/dimmer/internal/application/usecase"
	"github.com/bnema/dimmer/internal/cli/styles"
	"github.com/bnema/dimmer/internal/domain/build"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/domain/repository"
	"github.com/bnema/dimmer/internal/infrastructure/colorscheme"
	"github.com/bnema/dimmer/internal/infrastructure/config"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/file"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/internal/ui/theme"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	Store    *usecase.ThemePreferenceStore
	Resolver *colorscheme.Resolver

	lazyDB *sqlite.LazyDB

	// Context with logger
	ctx        context.Context
	logCleanup func()
	closeOnce  sync.Once
}

// Options tweak NewApp, mostly for commands with a full screen UI.
type Options struct {
	// FileLog sends logs to the rotating log file only, keeping stderr
	// free for a TUI.
	FileLog bool
}

// NewApp loads the configuration from the XDG locations and builds the app.
// The system scheme override follows config reloads.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	app, err := newApp(mgr.Get(), mgr, opts)
	if err != nil {
		return nil, err
	}
	app.ConfigMgr = mgr
	return app, nil
}

// NewAppFromConfig builds the app from an already loaded configuration.
func NewAppFromConfig(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	scheme := cfg.Appearance.SystemScheme
	return newApp(cfg, colorscheme.ConfigProviderFunc(func() string { return scheme }), opts)
}

func newApp(cfg *config.Config, schemes colorscheme.ConfigProvider, opts Options) (*App, error) {
	logger, logCleanup, err := newLogger(cfg, opts)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{
		Config:     cfg,
		Resolver:   colorscheme.NewResolver(schemes),
		ctx:        ctx,
		logCleanup: logCleanup,
	}
	app.registerDetectors()

	repo, err := app.openRepository()
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = usecase.NewThemePreferenceStore(repo, cfg.Storage.Key)
	app.Theme = styles.NewTheme(app.startupPalette())

	logger.Debug().
		Str("backend", string(cfg.Storage.Backend)).
		Str("path", cfg.Storage.Path).
		Str("key", app.Store.Key()).
		Msg("preference store ready")
	return app, nil
}

func newLogger(cfg *config.Config, opts Options) (logger zerolog.Logger, cleanup func(), err error) {
	level := cfg.Logging.Level
	if envLevel := os.Getenv("DIMMER_LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}

	logCfg := logging.Config{Level: logging.ParseLevel(level), Format: cfg.Logging.Format, TimeFormat: "15:04:05"}
	fileCfg := logging.FileConfig{
		Enabled:       cfg.Logging.EnableFileLog || opts.FileLog,
		LogDir:        cfg.Logging.LogDir,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxBackups:    cfg.Logging.MaxBackups,
		MaxAgeDays:    cfg.Logging.MaxAge,
		Compress:      cfg.Logging.Compress,
		WriteToStderr: !opts.FileLog,
	}

	logger, cleanup, err = logging.NewWithFile(logCfg, fileCfg)
	if err != nil {
		return logger, nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, cleanup, nil
}

func (a *App) openRepository() (repository.PreferenceRepository, error) {
	path := a.Config.Storage.Path
	switch a.Config.Storage.Backend {
	case config.StorageBackendFile:
		return file.NewPreferenceRepository(path), nil
	case config.StorageBackendSQLite, "":
		a.lazyDB = sqlite.NewLazyDB(path)
		return sqlite.NewLazyPreferenceRepository(a.lazyDB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.Config.Storage.Backend)
	}
}

func (a *App) registerDetectors() {
	a.Resolver.RegisterDetector(colorscheme.NewEnvDetector())
	if a.Config.Detection.Gsettings {
		a.Resolver.RegisterDetector(colorscheme.NewGsettingsDetector())
	}
	if a.Config.Detection.Terminal {
		a.Resolver.RegisterDetector(colorscheme.NewTerminalDetector())
	}
}

// startupPalette picks the palette for CLI output from the stored mode,
// without starting a manager.
func (a *App) startupPalette() theme.Palette {
	mode, ok := usecase.GetThemeMode(a.ctx, a.Store)
	if !ok {
		mode = a.DefaultMode()
	}

	light, dark := a.Palettes()
	if mode.ResolvesDark(mode.IsSystem() && a.Resolver.Resolve().PrefersDark) {
		return dark
	}
	return light
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Palettes returns the configured (light, dark) palettes.
func (a *App) Palettes() (light, dark theme.Palette) {
	return theme.PalettesFromConfig(&a.Config.Appearance)
}

// DefaultMode is the configured mode used until a choice is stored.
func (a *App) DefaultMode() entity.ThemeMode {
	mode, err := entity.ParseThemeMode(a.Config.Appearance.DefaultMode)
	if err != nil {
		return entity.ThemeModeSystem
	}
	return mode
}

// NewSession creates a theme session over the app's store and resolver.
func (a *App) NewSession(opts ...theme.Option) *theme.Session[theme.Palette] {
	return theme.NewSession[theme.Palette](a.Store, a.Resolver, opts...)
}

// NewMonitor creates a brightness monitor configured from the detection section.
func (a *App) NewMonitor() *colorscheme.Monitor {
	return colorscheme.NewMonitor(a.Resolver,
		colorscheme.WithPollInterval(a.Config.Detection.PollEvery()),
		colorscheme.WithGsettingsMonitor(a.Config.Detection.Gsettings),
	)
}

// StoragePath returns where preferences are persisted.
func (a *App) StoragePath() string {
	return a.Config.Storage.Path
}

// Close releases all resources. Safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		if a.lazyDB != nil {
			err = a.lazyDB.Close()
		}
		if a.logCleanup != nil {
			a.logCleanup()
		}
	})
	return err
}

// ErrPersist wraps a failed write reported by a one-shot session.
var ErrPersist = errors.New("theme mode not saved")
