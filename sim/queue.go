// Implements the WaitQueue, which holds the ids of clients waiting for a clerk.
// Clients are enqueued on arrival or when they come back from reading.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of client ids waiting for a free clerk.
// Order is by (re-)entry time; the engine owns the clients themselves.
type WaitQueue struct {
	queue []int
}

// Enqueue adds a client id to the back of the wait queue.
func (wq *WaitQueue) Enqueue(id int) {
	if id <= 0 {
		panic(fmt.Sprintf("Enqueue: invalid client id %d", id))
	}
	wq.queue = append(wq.queue, id)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of clients in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Items returns the queue contents for iteration.
// Callers MUST NOT append to or reslice the returned slice.
func (wq *WaitQueue) Items() []int {
	return wq.queue
}

// Dequeue removes the id at the front of the queue.
// Returns 0 if the queue is empty.
func (wq *WaitQueue) Dequeue() int {
	if len(wq.queue) == 0 {
		return 0
	}
	id := wq.queue[0]
	wq.queue = wq.queue[1:]
	return id
}
