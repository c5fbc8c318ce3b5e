package runtime

// pendingQueue is the bounded FIFO of requested indices that arrived while a
// transition was in flight. Capacity is fixed at construction; an index
// already present is never re-enqueued, so a user mashing "next" does not
// accumulate unbounded pending work.
type pendingQueue struct {
	items    []int
	capacity int
}

func newPendingQueue(capacity int) *pendingQueue {
	return &pendingQueue{capacity: capacity}
}

// push appends index unless the queue is full or already holds it.
// Reports whether the index was enqueued.
func (q *pendingQueue) push(index int) bool {
	if len(q.items) >= q.capacity {
		return false
	}
	for _, existing := range q.items {
		if existing == index {
			return false
		}
	}
	q.items = append(q.items, index)
	return true
}

// popDistinct removes and returns the oldest entry different from current,
// discarding any leading entries equal to it. Returns false when nothing
// remains to replay.
func (q *pendingQueue) popDistinct(current int) (int, bool) {
	for len(q.items) > 0 {
		head := q.items[0]
		q.items = q.items[1:]
		if head != current {
			return head, true
		}
	}
	return 0, false
}

func (q *pendingQueue) len() int {
	return len(q.items)
}

func (q *pendingQueue) clear() {
	q.items = q.items[:0]
}
