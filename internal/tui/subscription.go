package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/inventory/internal/state"
)

// FlowMsg carries one value from a screen's state flow. Gen identifies the
// subscription that produced it.
type FlowMsg[T any] struct {
	Gen    int64
	Value  T
	Closed bool
}

// generations is shared by every Subscription so that two screens of the
// same type never hand out the same Gen.
var generations atomic.Int64

// Subscription turns a state.Flow into a stream of FlowMsg commands. Each
// Start takes a fresh generation, so values still in flight from an earlier
// subscription are ignored.
type Subscription[T any] struct {
	gen    int64
	ch     <-chan T
	cancel func()
}

// Start subscribes to f, dropping any previous subscription.
func (s *Subscription[T]) Start(f *state.Flow[T]) tea.Cmd {
	s.Stop()
	s.gen = generations.Add(1)
	s.ch, s.cancel = f.Subscribe()
	return s.wait()
}

// Stop unsubscribes. The flow decides when its upstream actually stops.
func (s *Subscription[T]) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.ch, s.cancel = nil, nil
}

// Active reports whether the subscription is live.
func (s *Subscription[T]) Active() bool { return s.ch != nil }

// Next reports whether msg belongs to the live subscription, and if so
// returns the command that waits for the following value.
func (s *Subscription[T]) Next(msg FlowMsg[T]) (bool, tea.Cmd) {
	if msg.Gen != s.gen || s.ch == nil {
		return false, nil
	}
	if msg.Closed {
		s.ch, s.cancel = nil, nil
		return false, nil
	}
	return true, s.wait()
}

func (s *Subscription[T]) wait() tea.Cmd {
	ch, gen := s.ch, s.gen
	return func() tea.Msg {
		v, ok := <-ch
		return FlowMsg[T]{Gen: gen, Value: v, Closed: !ok}
	}
}
