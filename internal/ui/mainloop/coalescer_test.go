package mainloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualQueue collects posted callbacks so tests decide when the loop runs.
type manualQueue struct {
	fns []func()
}

func (q *manualQueue) post(fn func()) { q.fns = append(q.fns, fn) }

func (q *manualQueue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

func TestCoalescer_MergesBurstIntoSingleCallback(t *testing.T) {
	q := &manualQueue{}
	c := NewCoalescer(q.post)

	value := 0
	for i := 1; i <= 5; i++ {
		c.Post("theme-refresh", func() { value = i })
	}

	require.Len(t, q.fns, 1)
	assert.True(t, c.Pending("theme-refresh"))

	q.drain()

	assert.Equal(t, 5, value, "latest callback wins")
	assert.False(t, c.Pending("theme-refresh"))
}

func TestCoalescer_KeysAreIndependent(t *testing.T) {
	q := &manualQueue{}
	c := NewCoalescer(q.post)

	var ran []string
	c.Post("a", func() { ran = append(ran, "a") })
	c.Post("b", func() { ran = append(ran, "b") })
	c.Post("a", func() { ran = append(ran, "a2") })

	q.drain()

	assert.Equal(t, []string{"a2", "b"}, ran)
}

func TestCoalescer_RepostAfterRunSchedulesAgain(t *testing.T) {
	q := &manualQueue{}
	c := NewCoalescer(q.post)

	runs := 0
	c.Post("k", func() { runs++ })
	q.drain()
	c.Post("k", func() { runs++ })
	q.drain()

	assert.Equal(t, 2, runs)
}

func TestCoalescer_InlinePost(t *testing.T) {
	c := NewCoalescer(Inline)

	runs := 0
	c.Post("k", func() { runs++ })
	c.Post("k", func() { runs++ })

	assert.Equal(t, 2, runs, "inline posting runs every request immediately")
}

func TestCoalescer_IgnoresEmptyKeyAndNilFunc(t *testing.T) {
	q := &manualQueue{}
	c := NewCoalescer(q.post)

	c.Post("", func() {})
	c.Post("k", nil)

	assert.Empty(t, q.fns)
}

func TestCoalescer_DropsWorkAfterDestroy(t *testing.T) {
	q := &manualQueue{}
	c := NewCoalescer(q.post)

	ran := false
	c.Post("ghost", func() { ran = true })
	c.Destroy()

	require.Len(t, q.fns, 1)
	q.drain()
	assert.False(t, ran, "queued work is dropped after destroy")

	c.Post("ghost", func() { ran = true })
	assert.Empty(t, q.fns, "no new callback after destroy")
}

func TestNewCoalescer_PanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() { _ = NewCoalescer(nil) })
}
