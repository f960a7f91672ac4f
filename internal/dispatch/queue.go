package dispatch

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-report/internal/weather"
)

// ErrQueueClosed is returned by Submit after Close.
var ErrQueueClosed = errors.New("dispatch queue closed")

// Message is one rendered report addressed to a recipient.
type Message struct {
	Recipient string         `json:"recipient"`
	Report    weather.Report `json:"report"`
}

// Sender delivers a message to its recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Queue hands messages to a fixed pool of workers so callers never block on
// delivery. Delivery failures are logged and dropped.
type Queue struct {
	sender  Sender
	timeout time.Duration

	inCh chan Message
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue with the given buffer size. Each delivery gets
// timeout (0 means none).
func NewQueue(sender Sender, buffer int, timeout time.Duration) *Queue {
	if buffer < 0 {
		buffer = 0
	}
	return &Queue{
		sender:  sender,
		timeout: timeout,
		inCh:    make(chan Message, buffer),
	}
}

// StartWorkers starts n delivery workers.
func (q *Queue) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		q.wg.Add(1)
		go func(workerID int) {
			defer q.wg.Done()
			for msg := range q.inCh {
				q.deliver(workerID, msg)
			}
		}(i)
	}
}

func (q *Queue) deliver(workerID int, msg Message) {
	ctx := context.Background()
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	if err := q.sender.Send(ctx, msg); err != nil {
		log.Printf("ERROR: dispatch: worker %d failed to deliver report %s to %s: %v",
			workerID, msg.Report.ID, msg.Recipient, err)
	}
}

// Submit enqueues msg for delivery.
func (q *Queue) Submit(msg Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.inCh <- msg
	return nil
}

// Close stops accepting messages and waits for the workers to drain the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.inCh)
	q.mu.Unlock()

	q.wg.Wait()
}
