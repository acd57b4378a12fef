package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{"/api/metrics", "/api/campaigns", "/api/revenue-data", "/api/traffic-sources"}

type recorder struct {
	mu     sync.Mutex
	counts map[string]int
	events int
}

func newRecorder() *recorder { return &recorder{counts: map[string]int{}} }

func (r *recorder) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[key]++
	r.events++
}

func (r *recorder) snapshot() (map[string]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out, r.events
}

func TestForceUpdateWhileIdle(t *testing.T) {
	rec := newRecorder()
	c := New(rec, time.Hour, keys)
	require.False(t, c.Active())

	c.ForceUpdate()
	counts, events := rec.snapshot()
	assert.Equal(t, 4, events)
	for _, k := range keys {
		assert.Equal(t, 1, counts[k], k)
	}

	c.ForceUpdate()
	counts, events = rec.snapshot()
	assert.Equal(t, 8, events)
	for _, k := range keys {
		assert.Equal(t, 2, counts[k], k)
	}
}

func TestForceUpdateWhileActive(t *testing.T) {
	rec := newRecorder()
	c := New(rec, time.Hour, keys)
	c.Start(context.Background())
	defer c.Stop()

	c.ForceUpdate()
	counts, _ := rec.snapshot()
	for _, k := range keys {
		assert.Equal(t, 1, counts[k], k)
	}
}

func TestTimerInvalidatesAllKeys(t *testing.T) {
	rec := newRecorder()
	ticks := make(chan struct{}, 16)
	c := New(rec, 5*time.Millisecond, keys, WithOnTick(func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}))
	c.Start(context.Background())
	defer c.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatal("timer never fired")
		}
	}
	counts, _ := rec.snapshot()
	for _, k := range keys {
		assert.GreaterOrEqual(t, counts[k], 2, k)
	}
}

func TestStopPreventsFurtherInvalidation(t *testing.T) {
	rec := newRecorder()
	c := New(rec, 2*time.Millisecond, keys)
	c.Start(context.Background())
	assert.Eventually(t, func() bool { _, n := rec.snapshot(); return n >= 4 }, 2*time.Second, time.Millisecond)

	c.Stop()
	assert.False(t, c.Active())
	_, before := rec.snapshot()
	time.Sleep(20 * time.Millisecond)
	_, after := rec.snapshot()
	assert.Equal(t, before, after)

	c.Stop() // idle stop is a no-op
}

func TestStopFromOnTick(t *testing.T) {
	rec := newRecorder()
	returned := make(chan struct{})
	var c *Coordinator
	var once sync.Once
	c = New(rec, 2*time.Millisecond, keys, WithOnTick(func() {
		c.Stop()
		once.Do(func() { close(returned) })
	}))
	c.Start(context.Background())

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop inside onTick did not return")
	}
	assert.False(t, c.Active())
	_, before := rec.snapshot()
	assert.Equal(t, len(keys), before)
	time.Sleep(20 * time.Millisecond)
	_, after := rec.snapshot()
	assert.Equal(t, before, after)

	// restartable after a self-stop
	c.Start(context.Background())
	assert.Eventually(t, func() bool { _, n := rec.snapshot(); return n > before }, 2*time.Second, time.Millisecond)
	c.Stop()
}

func TestContextCancelTearsDown(t *testing.T) {
	rec := newRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	c := New(rec, 2*time.Millisecond, keys)
	c.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !c.Active() }, 2*time.Second, time.Millisecond)
	_, before := rec.snapshot()
	time.Sleep(20 * time.Millisecond)
	_, after := rec.snapshot()
	assert.Equal(t, before, after)
}

func TestStartIsIdempotentAndRestartable(t *testing.T) {
	rec := newRecorder()
	c := New(rec, time.Hour, keys)
	ctx := context.Background()

	c.SetEnabled(ctx, true)
	c.SetEnabled(ctx, true)
	assert.True(t, c.Active())
	c.SetEnabled(ctx, false)
	assert.False(t, c.Active())
	c.Start(ctx)
	assert.True(t, c.Active())
	c.Stop()
	_, events := rec.snapshot()
	assert.Equal(t, 0, events)
}

func TestDefaultInterval(t *testing.T) {
	c := New(newRecorder(), 0, keys)
	assert.Equal(t, DefaultInterval, c.interval)
}
