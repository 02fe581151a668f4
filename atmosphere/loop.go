package atmosphere

import (
	"context"
	"time"
)

// DefaultInterval is one nominal frame.
const DefaultInterval = time.Second / 60

type loopHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start drives Tick on sink every interval until ctx is cancelled or Stop is
// called. A zero interval means DefaultInterval.
func (c *Controller) Start(ctx context.Context, sink RenderSink, interval time.Duration) error {
	if sink == nil {
		return ErrNoSurface
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	c.mu.Lock()
	if c.loop != nil {
		c.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &loopHandle{cancel: cancel, done: make(chan struct{})}
	c.loop = h
	c.mu.Unlock()

	go func() {
		defer close(h.done)
		defer c.release(h)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Tick(sink)
			}
		}
	}()
	return nil
}

// Stop ends the render loop and waits for it to exit. It is safe to call
// more than once or without a running loop.
func (c *Controller) Stop() {
	c.mu.Lock()
	h := c.loop
	c.loop = nil
	c.mu.Unlock()
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}

// release forgets h once its goroutine exits, so a loop ended by its parent
// context can be started again.
func (c *Controller) release(h *loopHandle) {
	c.mu.Lock()
	if c.loop == h {
		c.loop = nil
	}
	c.mu.Unlock()
	h.cancel()
}

// Running reports whether a render loop is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loop != nil
}
