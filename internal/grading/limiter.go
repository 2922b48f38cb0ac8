package grading

import "sync"

// Limiter bounds how many external calls run at once. Work beyond the limit
// waits in a FIFO queue; the queue is unbounded and nothing is ever dropped.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	active  int
	waiters []chan struct{}
}

func NewLimiter(limit int) *Limiter {
	if limit < 1 {
		limit = 1
	}
	return &Limiter{limit: limit}
}

// Acquire blocks until a slot is free. Waiters are admitted strictly in
// arrival order.
func (l *Limiter) Acquire() {
	l.mu.Lock()
	if l.active < l.limit && len(l.waiters) == 0 {
		l.active++
		l.mu.Unlock()
		return
	}
	ready := make(chan struct{})
	l.waiters = append(l.waiters, ready)
	l.mu.Unlock()
	<-ready
}

// Release frees a slot and admits the oldest waiter, if any.
func (l *Limiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.waiters) > 0 {
		next := l.waiters[0]
		l.waiters = l.waiters[1:]
		close(next)
		return
	}
	if l.active > 0 {
		l.active--
	}
}

// Do runs fn inside an admission slot.
func (l *Limiter) Do(fn func() error) error {
	l.Acquire()
	defer l.Release()
	return fn()
}
