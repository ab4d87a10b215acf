package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// source is an upstream whose emissions the test drives by hand.
type source struct {
	mu      sync.Mutex
	current chan int
	calls   int
}

func (s *source) upstream(ctx context.Context) <-chan int {
	ch := make(chan int)
	s.mu.Lock()
	s.current = ch
	s.calls++
	s.mu.Unlock()
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.current == ch {
			s.current = nil
		}
	}()
	return ch
}

func (s *source) send(t *testing.T, v int) {
	t.Helper()
	var ch chan int
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		ch = s.current
		return ch != nil
	}, time.Second, 5*time.Millisecond)
	select {
	case ch <- v:
	case <-time.After(time.Second):
		t.Fatal("upstream value not collected")
	}
}

func next(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("no value")
	}
	return 0
}

func TestFlowReplaysInitialThenUpstreamValues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(time.Second), -1)

	require.False(t, f.Active(), "lazy flow should not start before a subscriber")
	require.Equal(t, -1, f.Value())

	ch, unsubscribe := f.Subscribe()
	defer unsubscribe()
	require.Equal(t, -1, next(t, ch))

	src.send(t, 7)
	require.Equal(t, 7, next(t, ch))
	require.Equal(t, 7, f.Value())

	// a late subscriber sees the current value first
	late, stop := f.Subscribe()
	defer stop()
	require.Equal(t, 7, next(t, late))
	require.Equal(t, 1, f.Starts())
}

func TestFlowResubscribeWithinGraceKeepsUpstream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(200*time.Millisecond), 0)

	ch, unsubscribe := f.Subscribe()
	next(t, ch)
	src.send(t, 1)
	require.Equal(t, 1, next(t, ch))
	unsubscribe()

	time.Sleep(50 * time.Millisecond)
	require.True(t, f.Active(), "upstream should survive inside the grace window")

	ch2, unsubscribe2 := f.Subscribe()
	defer unsubscribe2()
	require.Equal(t, 1, next(t, ch2))
	require.Equal(t, 1, f.Starts(), "resubscribing inside the window must not restart upstream")

	time.Sleep(300 * time.Millisecond)
	require.True(t, f.Active(), "timer from the earlier unsubscribe must have been cancelled")
}

func TestFlowStopsAfterGraceAndRestarts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(50*time.Millisecond), 0)

	ch, unsubscribe := f.Subscribe()
	next(t, ch)
	src.send(t, 3)
	next(t, ch)
	unsubscribe()

	require.Eventually(t, func() bool { return !f.Active() }, time.Second, 5*time.Millisecond)
	require.Equal(t, 3, f.Value(), "value survives the upstream stopping")

	ch2, unsubscribe2 := f.Subscribe()
	defer unsubscribe2()
	require.Equal(t, 3, next(t, ch2))
	require.Equal(t, 2, f.Starts())
	src.send(t, 4)
	require.Equal(t, 4, next(t, ch2))
}

func TestFlowZeroTimeoutStopsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(0), 0)

	_, unsubscribe := f.Subscribe()
	require.True(t, f.Active())
	unsubscribe()
	require.False(t, f.Active())
}

func TestFlowEagerlyStartsWithoutSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, Eagerly, 0)

	require.True(t, f.Active())
	src.send(t, 9)
	require.Eventually(t, func() bool { return f.Value() == 9 }, time.Second, 5*time.Millisecond)

	ch, unsubscribe := f.Subscribe()
	require.Equal(t, 9, next(t, ch))
	unsubscribe()
	require.True(t, f.Active(), "eager flows ignore subscriber count")
}

func TestFlowScopeCancelClosesSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(time.Second), 0)

	ch, unsubscribe := f.Subscribe()
	next(t, ch)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.False(t, f.Active())
	unsubscribe()

	late, _ := f.Subscribe()
	_, ok := <-late
	assert.False(t, ok, "subscribing to a closed flow yields a closed channel")
}

func TestFlowConflatesForSlowSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &source{}
	f := StateIn(ctx, src.upstream, WhileSubscribed(time.Second), 0)

	ch, unsubscribe := f.Subscribe()
	defer unsubscribe()
	for i := 1; i <= 3; i++ {
		src.send(t, i)
	}
	require.Eventually(t, func() bool { return f.Value() == 3 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 3, next(t, ch))
}
