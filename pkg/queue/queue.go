// Package queue provides the thread-safe FIFO of parts shared between the
// producer and the assemblies.
//
// Two queues exist per producer: the work-in-progress queue that factories
// consume from, and the finished-products queue that assemblies drain.
// Mutations take an exclusive lock; Len, Empty and Front take a shared one.
package queue

import (
	"sync"

	"github.com/matzehuels/jsonizer/pkg/part"
)

// Queue is an ordered, goroutine-safe sequence of parts.
// The zero value is an empty queue ready to use.
type Queue struct {
	mu    sync.RWMutex
	parts []*part.Part
	head  int
}

// PushBack appends p. Nil parts are ignored.
func (q *Queue) PushBack(p *part.Part) {
	if p == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.parts = append(q.parts, p)
}

// PushBackAll appends every non-nil part in order under a single lock.
func (q *Queue) PushBackAll(ps []*part.Part) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range ps {
		if p != nil {
			q.parts = append(q.parts, p)
		}
	}
}

// Front returns the head without removing it.
func (q *Queue) Front() (*part.Part, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.head == len(q.parts) {
		return nil, false
	}
	return q.parts[q.head], true
}

// PopFront removes the head. It is a no-op on an empty queue.
func (q *Queue) PopFront() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.popLocked()
}

// TryGet atomically removes and returns the head if there is one.
func (q *Queue) TryGet() (*part.Part, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Rotate moves the head to the back in one step.
func (q *Queue) Rotate() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if p, ok := q.popLocked(); ok {
		q.parts = append(q.parts, p)
	}
}

// Len returns the number of queued parts.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.parts) - q.head
}

// Empty reports whether the queue holds no parts.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Drain removes and returns all queued parts in order.
func (q *Queue) Drain() []*part.Part {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*part.Part, len(q.parts)-q.head)
	copy(out, q.parts[q.head:])
	q.parts = nil
	q.head = 0
	return out
}

func (q *Queue) popLocked() (*part.Part, bool) {
	if q.head == len(q.parts) {
		return nil, false
	}
	p := q.parts[q.head]
	q.parts[q.head] = nil
	q.head++
	// Compact once the consumed prefix dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.parts) {
		n := copy(q.parts, q.parts[q.head:])
		clear(q.parts[n:])
		q.parts = q.parts[:n]
		q.head = 0
	}
	return p, true
}
