package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dimmer/internal/application/port"
	"github.com/bnema/dimmer/internal/cli"
	"github.com/bnema/dimmer/internal/cli/styles"
	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/infrastructure/config"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/internal/ui/mainloop"
	"github.com/bnema/dimmer/internal/ui/theme"
)

const (
	watchFormatText = "text"
	watchFormatJSON = "json"
	hookTimeout     = 30 * time.Second
)

var (
	watchFormat string
	watchExec   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the effective theme whenever it changes",
	Long: `Run until interrupted, printing one line each time the effective theme
changes: after a mode change from another dimmer invocation, after the
desktop switches between light and dark while in system mode, or after
the palettes in config.toml are edited.

--exec runs a shell command on every change with DIMMER_MODE,
DIMMER_THEME and DIMMER_SOURCE set, e.g.

  dimmer watch --exec 'kitty +kitten themes --reload-in=all "$DIMMER_THEME"'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", watchFormatText, "output format: text or json")
	watchCmd.Flags().StringVarP(&watchExec, "exec", "e", "", "shell command to run on every change")
}

// watchEvent is one emitted change.
type watchEvent struct {
	Mode   entity.ThemeMode
	Theme  theme.Palette
	Source string
}

type watchEmitter struct {
	mu       sync.Mutex
	out      io.Writer
	json     zerolog.Logger
	format   string
	renderer *styles.StatusRenderer
	hook     string
	last     *watchEvent

	// Hooks run off the event loop, one at a time. Events arriving while
	// a hook runs collapse into the latest one.
	runHook     func(ctx context.Context, hook string, ev watchEvent)
	hookRunning bool
	hookNext    *watchEvent
	hooks       sync.WaitGroup
}

func newWatchEmitter(out io.Writer, format, hook string, renderer *styles.StatusRenderer) (*watchEmitter, error) {
	switch format {
	case watchFormatText, watchFormatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", format, watchFormatText, watchFormatJSON)
	}
	return &watchEmitter{
		out:      out,
		json:     zerolog.New(out).With().Timestamp().Logger(),
		format:   format,
		renderer: renderer,
		hook:     hook,
		runHook:  runHook,
	}, nil
}

// emit prints ev unless it repeats the previous event.
func (e *watchEmitter) emit(ctx context.Context, ev watchEvent) {
	e.mu.Lock()
	if e.last != nil && *e.last == ev {
		e.mu.Unlock()
		return
	}
	e.last = &ev
	e.mu.Unlock()

	switch e.format {
	case watchFormatJSON:
		e.json.Log().
			Str("mode", ev.Mode.String()).
			Str("theme", ev.Theme.Name).
			Str("background", ev.Theme.Background).
			Str("text", ev.Theme.Text).
			Str("accent", ev.Theme.Accent).
			Str("source", ev.Source).
			Send()
	default:
		fmt.Fprint(e.out, e.renderer.RenderModeChanged(ev.Mode, ev.Theme.Name))
	}

	if e.hook != "" {
		e.queueHook(ctx, ev)
	}
}

func (e *watchEmitter) queueHook(ctx context.Context, ev watchEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hookRunning {
		e.hookNext = &ev
		return
	}
	e.hookRunning = true
	e.hooks.Add(1)
	go e.drainHooks(ctx, ev)
}

func (e *watchEmitter) drainHooks(ctx context.Context, ev watchEvent) {
	defer e.hooks.Done()
	for {
		e.runHook(ctx, e.hook, ev)

		e.mu.Lock()
		if e.hookNext == nil || ctx.Err() != nil {
			e.hookNext = nil
			e.hookRunning = false
			e.mu.Unlock()
			return
		}
		ev = *e.hookNext
		e.hookNext = nil
		e.mu.Unlock()
	}
}

// wait blocks until the running hook, if any, has exited.
func (e *watchEmitter) wait() {
	e.hooks.Wait()
}

func runHook(ctx context.Context, hook string, ev watchEvent) {
	log := logging.FromContext(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
	defer cancel()

	c := exec.CommandContext(hookCtx, "sh", "-c", hook)
	c.Env = append(os.Environ(),
		"DIMMER_MODE="+ev.Mode.String(),
		"DIMMER_THEME="+ev.Theme.Name,
		"DIMMER_SOURCE="+ev.Source,
	)
	c.Stdout = os.Stderr
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		log.Warn().Err(err).Str("hook", hook).Msg("exec hook failed")
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	emitter, err := newWatchEmitter(cmd.OutOrStdout(), watchFormat, watchExec, styles.NewStatusRenderer(app.Theme))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithSessionID(logging.WithComponent(ctx, "watch"), logging.GenerateSessionID())

	return watch(ctx, app, emitter)
}

func watch(ctx context.Context, app *cli.App, emitter *watchEmitter) error {
	log := logging.FromContext(ctx)
	loop := mainloop.NewLoop()
	session := app.NewSession(
		theme.WithPost(loop.Post),
		theme.WithPersistErrorHandler(func(err error) {
			log.Warn().Err(err).Msg("theme mode not saved")
		}),
	)

	var manager *theme.Manager[theme.Palette]
	current := func() watchEvent {
		return watchEvent{Mode: manager.Mode(), Theme: manager.Theme(), Source: sourceOf(manager.Mode(), app.Resolver)}
	}
	light, dark := app.Palettes()
	sessionCtx := session.Start(ctx, light, dark, app.DefaultMode(), func(theme.Palette, theme.Palette) {
		emitter.emit(ctx, current())
	})
	manager = theme.MustFromContext[theme.Palette](sessionCtx)
	loop.Post(func() { emitter.emit(ctx, current()) })

	if app.ConfigMgr != nil {
		app.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
			light, dark := theme.PalettesFromConfig(&cfg.Appearance)
			loop.Post(func() {
				manager.SetTheme(sessionCtx, theme.Update[theme.Palette]{Light: &light, Dark: &dark})
			})
			app.Resolver.Refresh()
		})
		if err := app.ConfigMgr.Watch(); err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loop.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return app.NewMonitor().Run(gctx)
	})
	g.Go(func() error {
		return followStore(gctx, app, loop, manager)
	})

	err := g.Wait()
	session.Stop()
	manager.Wait()
	emitter.wait()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// followStore picks up modes written by other dimmer processes.
func followStore(ctx context.Context, app *cli.App, loop *mainloop.Loop, manager *theme.Manager[theme.Palette]) error {
	interval := app.Config.Detection.PollEvery()
	if interval <= 0 {
		interval = config.DefaultConfig().Detection.PollEvery()
	}

	select {
	case <-manager.Ready():
	case <-ctx.Done():
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			prefs, ok := app.Store.Load(ctx)
			if !ok || prefs.Mode == manager.Mode() {
				continue
			}
			logging.FromContext(ctx).Debug().Str("mode", prefs.Mode.String()).Msg("stored mode changed elsewhere")
			loop.Post(func() {
				manager.SetTheme(ctx, theme.Update[theme.Palette]{Mode: &prefs.Mode, NoPersist: true})
			})
		}
	}
}

func sourceOf(mode entity.ThemeMode, brightness port.BrightnessSource) string {
	if !mode.IsSystem() {
		return "mode"
	}
	return brightness.Resolve().Source
}
