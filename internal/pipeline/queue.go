package pipeline

import "sync"

// Queue is a fixed-capacity FIFO with a drop-on-full insertion policy.
//
// TryPush never blocks: when the queue holds Cap items the new item is
// rejected and the caller keeps ownership of it. TryPop never blocks either.
// This is the backpressure mechanism of the concurrent mode: the producer
// discards excess frames instead of waiting, so memory stays bounded at Cap
// frames at the cost of completeness.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	size  int
}

func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{items: make([]T, capacity)}
}

func (q *Queue[T]) TryPush(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == len(q.items) {
		return false
	}

	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
	return true
}

func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.size == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

func (q *Queue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size == 0
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

func (q *Queue[T]) Cap() int {
	return len(q.items)
}

// Drain removes and returns everything still queued, oldest first.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	out := make([]T, 0, q.size)
	for q.size > 0 {
		out = append(out, q.items[q.head])
		q.items[q.head] = zero
		q.head = (q.head + 1) % len(q.items)
		q.size--
	}
	return out
}
