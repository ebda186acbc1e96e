package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks. The first Post for a key
// schedules one callback on the loop; later Posts before it runs only
// replace the function it will call.
type Coalescer struct {
	mu        sync.Mutex
	post      func(func())
	latest    map[string]func()
	destroyed bool
}

// NewCoalescer panics when post is nil.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		post:   post,
		latest: make(map[string]func()),
	}
}

// Post schedules fn under key, or replaces the already scheduled one.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if !scheduled {
		c.post(func() { c.run(key) })
	}
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	destroyed := c.destroyed
	c.mu.Unlock()

	if ok && !destroyed {
		fn()
	}
}

// Pending reports whether a callback for key is scheduled and not yet run.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.latest[key]
	return ok
}

// Destroy drops scheduled work; callbacks already posted become no-ops.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	clear(c.latest)
	c.mu.Unlock()
}
