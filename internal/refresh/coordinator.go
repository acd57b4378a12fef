// Package refresh periodically invalidates dashboard query caches so the next
// read goes back to the API.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval matches the dashboard's polling period.
const DefaultInterval = 30 * time.Second

type Invalidator interface {
	Invalidate(key string)
}

type Coordinator struct {
	inv      Invalidator
	keys     []string
	interval time.Duration
	log      *slog.Logger
	onTick   func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// tickMu covers a tick's invalidations, not its onTick callback.
	tickMu sync.Mutex
}

type Option func(*Coordinator)

// WithOnTick runs fn after every timed refresh, once its invalidations are
// done. fn runs on the timer goroutine and may call Stop; a callback already
// running when Stop returns is allowed to finish.
func WithOnTick(fn func()) Option {
	return func(c *Coordinator) { c.onTick = fn }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// New returns an idle coordinator for keys. A non-positive interval means
// DefaultInterval.
func New(inv Invalidator, interval time.Duration, keys []string, opts ...Option) *Coordinator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Coordinator{
		inv:      inv,
		keys:     append([]string(nil), keys...),
		interval: interval,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start arms the timer. It is a no-op when already active. The timer also
// stops when ctx is done.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	go c.loop(ctx, done)
	c.log.Debug("refresh armed", slog.Duration("interval", c.interval))
}

// Stop disarms the timer and waits out invalidations already in progress, so
// none happens once Stop returns. It does not wait for onTick.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()
	if done == nil {
		return
	}
	cancel()
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	c.log.Debug("refresh stopped")
}

// SetEnabled starts or stops the timer.
func (c *Coordinator) SetEnabled(ctx context.Context, enabled bool) {
	if enabled {
		c.Start(ctx)
		return
	}
	c.Stop()
}

func (c *Coordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done != nil
}

// ForceUpdate invalidates every key now. It works whether or not the timer
// is armed.
func (c *Coordinator) ForceUpdate() {
	c.invalidateAll()
}

func (c *Coordinator) invalidateAll() {
	for _, k := range c.keys {
		c.inv.Invalidate(k)
	}
}

func (c *Coordinator) loop(ctx context.Context, done chan struct{}) {
	t := time.NewTicker(c.interval)
	defer func() {
		t.Stop()
		c.mu.Lock()
		if c.done == done {
			c.cancel, c.done = nil, nil
		}
		c.mu.Unlock()
		close(done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !c.tick(ctx) {
				return
			}
			if c.onTick != nil {
				c.onTick()
			}
		}
	}
}

// tick invalidates every key unless ctx was canceled first. A tick racing
// with Stop must not fire late.
func (c *Coordinator) tick(ctx context.Context) bool {
	c.tickMu.Lock()
	defer c.tickMu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	c.invalidateAll()
	return true
}
