package theme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dimmer/internal/domain/entity"
	"github.com/bnema/dimmer/internal/ui/theme"
)

func TestFromContext(t *testing.T) {
	m, ok := theme.FromContext[string](context.Background())
	assert.False(t, ok)
	assert.Nil(t, m)

	mgr := theme.NewManager[string](nil, nil)
	ctx := theme.WithManager(context.Background(), mgr)

	got, ok := theme.FromContext[string](ctx)
	require.True(t, ok)
	assert.Same(t, mgr, got)
	assert.Same(t, mgr, theme.MustFromContext[string](ctx))

	_, ok = theme.FromContext[theme.Palette](ctx)
	assert.False(t, ok, "managers are keyed by theme type")
}

func TestMustFromContext_PanicsWithoutManager(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, theme.ErrNoManager))
	}()

	theme.MustFromContext[string](context.Background())
	t.Fatal("expected panic")
}

func TestSession_StartStop(t *testing.T) {
	ctx := testCtx()
	src, fire := brightness(t, true)
	rec := &renderRecorder{}

	session := theme.NewSession[string](nil, src)
	sessionCtx := session.Start(ctx, lightTheme, darkTheme, entity.ThemeModeSystem, rec.render)

	m := theme.MustFromContext[string](sessionCtx)
	assert.Same(t, session.Manager(), m)
	assert.Equal(t, darkTheme, m.Theme())

	fire()()
	assert.Equal(t, 1, rec.count())

	session.Stop()
	session.Stop()
	fire()()
	assert.Equal(t, 1, rec.count())
}
