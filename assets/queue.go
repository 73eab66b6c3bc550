package assets

import "sync"

// Poster schedules fn to run later on the poster's owning thread.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func())

func (f PosterFunc) Post(fn func()) { f(fn) }

// Queue is a Poster whose continuations run when the owner calls Drain.
// Post is safe from any goroutine; Drain must be called from the owner.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	notify  func()
}

// NewQueue creates a Queue. notify, when non-nil, is called after every Post
// so an event loop blocked elsewhere can wake up and Drain.
func NewQueue(notify func()) *Queue {
	return &Queue{notify: notify}
}

func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	notify := q.notify
	q.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// Len returns the number of continuations waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs pending continuations in posting order, including ones posted
// while draining, and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
		}
		n += len(batch)
	}
}
