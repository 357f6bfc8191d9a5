package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyCleaner struct {
	mu       sync.Mutex
	failures map[string]int
	calls    map[string]int
	done     chan string
}

func newFlakyCleaner() *flakyCleaner {
	return &flakyCleaner{
		failures: make(map[string]int),
		calls:    make(map[string]int),
		done:     make(chan string, 16),
	}
}

func (c *flakyCleaner) RemoveDraft(_ context.Context, name string) error {
	c.mu.Lock()
	c.calls[name]++
	fail := c.failures[name] > 0
	if fail {
		c.failures[name]--
	}
	c.mu.Unlock()

	if fail {
		c.done <- "fail:" + name
		return errors.New("transient")
	}
	c.done <- "ok:" + name
	return nil
}

func (c *flakyCleaner) callCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestDispatcher_RemovesQueuedDraft(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := newFlakyCleaner()
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx, cleaner)

	require.True(t, d.Enqueue("a.webp"))
	waitFor(t, cleaner.done, "ok:a.webp")
	assert.Equal(t, 1, cleaner.callCount("a.webp"))
}

func TestDispatcher_RetriesThenSucceeds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := newFlakyCleaner()
	cleaner.failures["b.webp"] = 2
	d := NewDispatcher(1, zerolog.Nop())
	d.backoff = time.Millisecond
	d.Start(ctx, cleaner)

	require.True(t, d.Enqueue("b.webp"))
	waitFor(t, cleaner.done, "ok:b.webp")
	assert.Equal(t, 3, cleaner.callCount("b.webp"))
}

func TestDispatcher_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := newFlakyCleaner()
	cleaner.failures["c.webp"] = 10
	cleaner.failures["d.webp"] = 0
	d := NewDispatcher(1, zerolog.Nop())
	d.backoff = time.Millisecond
	d.Start(ctx, cleaner)

	require.True(t, d.Enqueue("c.webp"))
	require.True(t, d.Enqueue("d.webp"))
	// Single worker: d.webp only runs once c.webp has been given up on.
	waitFor(t, cleaner.done, "ok:d.webp")
	assert.Equal(t, maxAttempts, cleaner.callCount("c.webp"))
}

func TestDispatcher_EnqueueDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, zerolog.Nop())
	for i := 0; i < channelBuffer; i++ {
		require.True(t, d.Enqueue("x.webp"))
	}
	assert.False(t, d.Enqueue("x.webp"))
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, zerolog.Nop())
	first := d.shardIndex("asset.webp")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, d.shardIndex("asset.webp"))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 8)
}
