package colorscheme

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/bnema/dimmer/internal/application/port"
	"github.com/bnema/dimmer/internal/logging"
)

// DefaultPollInterval is used when the caller does not configure one.
const DefaultPollInterval = 5 * time.Second

// eventStream yields one line per OS appearance change. Closing the reader
// stops the underlying producer.
type eventStream func(ctx context.Context) (io.ReadCloser, error)

// Monitor drives Resolver.Refresh from OS change notifications.
// It follows `gsettings monitor` when possible and polls otherwise.
type Monitor struct {
	resolver port.ColorSchemeResolver
	interval time.Duration
	stream   eventStream
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithPollInterval sets the polling period. Zero or negative disables polling.
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.interval = d }
}

// WithGsettingsMonitor enables or disables following `gsettings monitor`.
func WithGsettingsMonitor(enabled bool) MonitorOption {
	return func(m *Monitor) {
		if enabled {
			m.stream = gsettingsStream
		} else {
			m.stream = nil
		}
	}
}

func withEventStream(s eventStream) MonitorOption {
	return func(m *Monitor) { m.stream = s }
}

// NewMonitor creates a monitor for resolver.
func NewMonitor(resolver port.ColorSchemeResolver, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		resolver: resolver,
		interval: DefaultPollInterval,
		stream:   gsettingsStream,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run blocks until ctx is done. It refreshes once on entry so subscribers
// registered before Run see the initial state.
func (m *Monitor) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "colorscheme-monitor")
	log := logging.FromContext(ctx)

	pref := m.resolver.Refresh()
	log.Debug().Bool("prefers_dark", pref.PrefersDark).Str("source", pref.Source).Msg("initial color scheme")

	if m.stream != nil {
		err := m.follow(ctx)
		if ctx.Err() != nil {
			return nil
		}
		log.Debug().Err(err).Msg("change stream ended, falling back to polling")
	}

	return m.poll(ctx)
}

func (m *Monitor) follow(ctx context.Context) error {
	r, err := m.stream(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	log := logging.FromContext(ctx)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		pref := m.resolver.Refresh()
		log.Debug().
			Str("event", scanner.Text()).
			Bool("prefers_dark", pref.PrefersDark).
			Str("source", pref.Source).
			Msg("color scheme event")
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

func (m *Monitor) poll(ctx context.Context) error {
	if m.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.resolver.Refresh()
		}
	}
}

// cmdReader waits for the child process when closed.
type cmdReader struct {
	io.ReadCloser
	cmd    *exec.Cmd
	cancel context.CancelFunc
}

func (c *cmdReader) Close() error {
	c.cancel()
	_ = c.ReadCloser.Close()
	err := c.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func gsettingsStream(ctx context.Context) (io.ReadCloser, error) {
	if _, err := exec.LookPath(gsettingsBinary); err != nil {
		return nil, fmt.Errorf("gsettings not found: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, gsettingsBinary, "monitor", gsettingsSchema, gsettingsKey)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("gsettings monitor pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start gsettings monitor: %w", err)
	}
	return &cmdReader{ReadCloser: stdout, cmd: cmd, cancel: cancel}, nil
}
