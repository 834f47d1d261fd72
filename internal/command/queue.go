package command

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// elementQueue is the continuation queue: a FIFO of same-length byte
// elements carried across execute calls when a Merkle proof does not fit
// one response. The leaf proof command fills it, the drain command empties
// it, and nothing else touches it.
type elementQueue struct {
	q *linkedlistqueue.Queue
}

func newElementQueue() *elementQueue {
	return &elementQueue{q: linkedlistqueue.New()}
}

func (e *elementQueue) push(el []byte) {
	e.q.Enqueue(el)
}

func (e *elementQueue) pop() ([]byte, bool) {
	v, ok := e.q.Dequeue()
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (e *elementQueue) len() int {
	return e.q.Size()
}

func (e *elementQueue) empty() bool {
	return e.q.Empty()
}

// uniformLen returns the shared element length, or false if the queued
// elements disagree. The queue must be non-empty.
func (e *elementQueue) uniformLen() (int, bool) {
	values := e.q.Values()
	want := len(values[0].([]byte))
	for _, v := range values[1:] {
		if len(v.([]byte)) != want {
			return 0, false
		}
	}
	return want, true
}
