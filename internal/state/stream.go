package state

import "context"

// Map applies fn to every value of in. The result closes when in closes or
// ctx ends.
func Map[A, B any](ctx context.Context, in <-chan A, fn func(A) B) <-chan B {
	out := make(chan B)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- fn(v):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Filter passes on the values of in for which keep returns true.
func Filter[T any](ctx context.Context, in <-chan T, keep func(T) bool) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				if !keep(v) {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// First returns the first value of in accepted by match. ok is false when in
// closes or ctx ends first.
func First[T any](ctx context.Context, in <-chan T, match func(T) bool) (v T, ok bool) {
	for {
		select {
		case <-ctx.Done():
			return v, false
		case got, open := <-in:
			if !open {
				return v, false
			}
			if match == nil || match(got) {
				return got, true
			}
		}
	}
}

// NotNil is a First/Filter predicate for pointer streams.
func NotNil[T any](p *T) bool { return p != nil }
