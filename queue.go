package easel

import "sync"

// AnimationQueue serializes asynchronous transform operations: at most one
// enqueued operation runs at a time, strictly in submission order. The next
// operation starts only after the current one settles, whether it succeeded
// or failed. A failing operation's error is delivered only to its own
// caller's channel and does not block later operations.
//
// There is no priority and no cancellation: once enqueued, an operation will
// run to completion.
type AnimationQueue struct {
	mu   sync.Mutex
	tail chan struct{} // closed when the most recently enqueued op settles
}

// NewAnimationQueue creates an empty queue.
func NewAnimationQueue() *AnimationQueue {
	return &AnimationQueue{}
}

// Enqueue appends op to the queue and returns a channel that receives the
// operation's result exactly once. Operations observe scene state in
// submission order, which keeps overlapping scale/rotate calls from racing
// on the same object's geometry.
func (q *AnimationQueue) Enqueue(op func() error) <-chan error {
	res := make(chan error, 1)

	q.mu.Lock()
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev
		}
		res <- op()
		close(done)
	}()
	return res
}

// Wait blocks until every operation enqueued so far has settled.
func (q *AnimationQueue) Wait() {
	q.mu.Lock()
	tail := q.tail
	q.mu.Unlock()
	if tail != nil {
		<-tail
	}
}
