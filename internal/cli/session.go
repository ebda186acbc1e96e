package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/dimmer/internal/ui/theme"
)

// RunOnce runs op against a short-lived theme session: it waits for the
// stored mode to load, applies op, then waits for the resulting writes.
// A write the manager could not complete is returned wrapped in ErrPersist.
func (a *App) RunOnce(op func(ctx context.Context, m *theme.Manager[theme.Palette])) error {
	var (
		mu         sync.Mutex
		persistErr error
	)
	session := a.NewSession(theme.WithPersistErrorHandler(func(err error) {
		mu.Lock()
		persistErr = errors.Join(persistErr, err)
		mu.Unlock()
	}))

	light, dark := a.Palettes()
	ctx := session.Start(a.ctx, light, dark, a.DefaultMode(), nil)
	m := session.Manager()
	<-m.Ready()

	op(ctx, m)
	m.Wait()
	session.Stop()

	mu.Lock()
	defer mu.Unlock()
	if persistErr != nil {
		return fmt.Errorf("%w: %w", ErrPersist, persistErr)
	}
	return nil
}
