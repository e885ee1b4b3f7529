// Package chflow holds context-aware channel helpers used by the event
// loops of the node.
package chflow

import "context"

// Receive waits for a value from ch. The boolean is false when ctx is done
// first or ch is closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false
	case v, ok := <-ch:
		return v, ok
	}
}

// Send delivers v to ch unless ctx is done first.
func Send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- v:
		return true
	}
}

// SendAll delivers values to ch in order. It stops at the first value that
// could not be delivered and reports how many were sent.
func SendAll[T any](ctx context.Context, ch chan<- T, values ...T) int {
	for i, v := range values {
		if !Send(ctx, ch, v) {
			return i
		}
	}
	return len(values)
}
