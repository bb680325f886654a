package queue

// Queue is a generic interface for FIFO element queues.
// Implementations in this package are not synchronized; callers that share a
// queue between goroutines must provide their own locking.
type Queue[T any] interface {
	// Enqueue adds an item to the queue.
	// Returns true if successful, false if the queue is full.
	Enqueue(item T) bool

	// Dequeue removes and returns an item from the queue.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// Len returns the number of items currently buffered.
	Len() int
}
