package semaphore

import "context"

// Semaphore is a counting semaphore used as the admission gate for worker
// fan-out.
type Semaphore struct {
	ch chan struct{}
}

// New creates a new semaphore with the given capacity. Capacities below one
// are raised to one.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// Acquire acquires a slot, blocking until one is free or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot
func (s *Semaphore) Release() {
	<-s.ch
}

// Cap returns the number of slots.
func (s *Semaphore) Cap() int {
	return cap(s.ch)
}
