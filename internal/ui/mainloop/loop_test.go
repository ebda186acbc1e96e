package mainloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, cancel
}

func TestLoop_RunsInPostOrder(t *testing.T) {
	l, _ := startLoop(t)

	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})
	for i := range 50 {
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 49 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not drain")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_PostFromLoopDoesNotDeadlock(t *testing.T) {
	l, _ := startLoop(t)

	done := make(chan struct{})
	l.Post(func() {
		l.Post(func() { close(done) })
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested post never ran")
	}
}

func TestLoop_QueuedBeforeRun(t *testing.T) {
	l := NewLoop()
	ran := make(chan struct{})
	l.Post(func() { close(ran) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("pre-queued function never ran")
	}
}

func TestLoop_DropsAfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	ran := false
	l.Post(func() { ran = true })
	assert.False(t, ran)
}

func TestLoop_WithCoalescer(t *testing.T) {
	l := NewLoop()
	c := NewCoalescer(l.Post)

	var runs int
	for range 10 {
		c.Post("refresh", func() { runs++ })
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l.Post(func() { close(done) })
	go l.Run(ctx)

	<-done
	cancel()
	<-l.Done()
	assert.Equal(t, 1, runs)
}

func TestLoop_Drain(t *testing.T) {
	l := NewLoop()

	var order []int
	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 3) })
	})
	l.Post(func() { order = append(order, 2) })

	select {
	case <-l.Wakeup():
	default:
		t.Fatal("Post must signal Wakeup")
	}

	assert.Equal(t, 2, l.Drain())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, l.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, l.Drain())

	l.Post(func() { order = append(order, 4) })
	l.Stop()
	assert.Zero(t, l.Drain())
	assert.Len(t, order, 3)
}
