// Package state holds observable values derived from upstream streams.
//
// A Flow keeps the latest value of an upstream channel and hands it to any
// number of subscribers. With WhileSubscribed the upstream only runs while
// someone is watching, plus a grace period after the last subscriber leaves,
// so a screen that disappears and comes straight back keeps its running
// query instead of starting a new one.
package state

import (
	"context"
	"sync"
	"time"
)

// Upstream produces values until ctx is cancelled, then closes the channel.
type Upstream[T any] func(ctx context.Context) <-chan T

// Started decides when a Flow runs its upstream.
type Started struct {
	eager       bool
	stopTimeout time.Duration
}

// Eagerly starts the upstream immediately and keeps it until the scope ends.
var Eagerly = Started{eager: true}

// WhileSubscribed runs the upstream while there are subscribers and for
// stopTimeout after the last one leaves.
func WhileSubscribed(stopTimeout time.Duration) Started {
	if stopTimeout < 0 {
		stopTimeout = 0
	}
	return Started{stopTimeout: stopTimeout}
}

// Flow is a conflated, replaying holder of the latest value. It is safe for
// concurrent use.
type Flow[T any] struct {
	scope    context.Context
	upstream Upstream[T]
	started  Started

	mu       sync.Mutex
	value    T
	subs     map[uint64]chan T
	nextID   uint64
	cancel   context.CancelFunc // running upstream, nil when stopped
	stopping *time.Timer
	starts   int
	closed   bool
}

// StateIn derives a Flow from upstream, bound to scope. initial is the value
// seen before upstream emits anything.
func StateIn[T any](scope context.Context, upstream Upstream[T], started Started, initial T) *Flow[T] {
	f := &Flow[T]{
		scope:    scope,
		upstream: upstream,
		started:  started,
		value:    initial,
		subs:     map[uint64]chan T{},
	}
	if started.eager {
		f.mu.Lock()
		f.startLocked()
		f.mu.Unlock()
	}
	go func() {
		<-scope.Done()
		f.shutdown()
	}()
	return f
}

// Value returns the current value.
func (f *Flow[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Starts reports how many times the upstream has been started.
func (f *Flow[T]) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

// Active reports whether the upstream is currently running.
func (f *Flow[T]) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Subscribe returns a channel holding the current value followed by later
// ones, and a func to unsubscribe. Slow subscribers only see the newest
// value. The channel is closed on unsubscribe or when the scope ends.
func (f *Flow[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	ch <- f.value
	if f.stopping != nil {
		f.stopping.Stop()
		f.stopping = nil
	}
	if f.cancel == nil {
		f.startLocked()
	}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { f.unsubscribe(id) })
	}
}

// Subscribers reports the number of live subscriptions.
func (f *Flow[T]) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Flow[T]) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.subs[id]
	if !ok {
		return
	}
	delete(f.subs, id)
	close(ch)
	if len(f.subs) > 0 || f.started.eager || f.cancel == nil {
		return
	}
	if f.started.stopTimeout == 0 {
		f.stopLocked()
		return
	}
	var timer *time.Timer
	timer = time.AfterFunc(f.started.stopTimeout, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.stopping != timer || len(f.subs) > 0 {
			return
		}
		f.stopping = nil
		f.stopLocked()
	})
	f.stopping = timer
}

func (f *Flow[T]) startLocked() {
	if f.closed {
		return
	}
	ctx, cancel := context.WithCancel(f.scope)
	f.cancel = cancel
	f.starts++
	src := f.upstream(ctx)
	go f.collect(ctx, src)
}

func (f *Flow[T]) stopLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flow[T]) collect(ctx context.Context, src <-chan T) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src:
			if !ok {
				return
			}
			f.emit(ctx, v)
		}
	}
}

func (f *Flow[T]) emit(ctx context.Context, v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// a stopped upstream may still hand over one value
	if ctx.Err() != nil {
		return
	}
	f.value = v
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

func (f *Flow[T]) shutdown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.stopping != nil {
		f.stopping.Stop()
		f.stopping = nil
	}
	f.stopLocked()
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
