package frame

import (
	"time"
)

// Slot is a capacity-1 hand-off cell between two goroutines.
//
// Put never blocks: if the slot already holds an unread value, that value
// is discarded and replaced, so the consumer always observes the most
// recent value ("latest frame always wins"). Take variants are provided
// for both a polling consumer (TryTake) and a waiting consumer (Take with
// a bounded timeout).
//
// Slot tolerates concurrent use from independent goroutines. The overwrite
// policy assumes a single producer per hand-off cycle, which is how the
// pipeline uses it: one listener feeding one decode worker, one decode
// worker feeding the display loop.
type Slot[T any] struct {
	ch chan T
}

// NewSlot creates an empty Slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1)}
}

// Put stores v in the slot, discarding any unread value already present.
// It reports whether an unread value was discarded, so callers can count
// frames that were overwritten before the consumer saw them.
func (s *Slot[T]) Put(v T) (dropped bool) {
	for {
		select {
		case s.ch <- v:
			return dropped
		default:
		}
		select {
		case <-s.ch:
			dropped = true
		default:
		}
	}
}

// TryTake returns the current value without blocking. The second return
// value is false when the slot is empty.
func (s *Slot[T]) TryTake() (T, bool) {
	select {
	case v := <-s.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Take waits up to timeout for a value. The second return value is false
// when the wait expired with the slot still empty.
func (s *Slot[T]) Take(timeout time.Duration) (T, bool) {
	select {
	case v := <-s.ch:
		return v, true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case v := <-s.ch:
		return v, true
	case <-timer.C:
		var zero T
		return zero, false
	}
}
