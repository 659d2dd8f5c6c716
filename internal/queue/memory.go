package queue

import (
	"context"
	"fmt"
	"sync"
)

const memoryQueueCapacity = 256

// MemoryQueue is a channel-backed JobQueue for single-process deployments
// and tests. Messages are acknowledged implicitly.
type MemoryQueue struct {
	jobs   chan *Job
	mu     sync.Mutex
	closed bool
}

// NewMemoryQueue creates an in-memory job queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{jobs: make(chan *Job, memoryQueueCapacity)}
}

// Enqueue adds a job to the queue
func (q *MemoryQueue) Enqueue(ctx context.Context, job *Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return fmt.Errorf("queue closed")
	}
	q.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("queue full")
	}
}

// Consume streams queued jobs until the context is cancelled
func (q *MemoryQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error) {
	msgChan := make(chan *Message)
	errChan := make(chan error, 1)

	go func() {
		defer close(msgChan)
		defer close(errChan)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.jobs:
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case msgChan <- &Message{Job: job}:
				}
			}
		}
	}()

	return msgChan, errChan, nil
}

// HealthCheck reports whether the queue accepts jobs
func (q *MemoryQueue) HealthCheck(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return fmt.Errorf("queue closed")
	}
	return nil
}

// Close stops the queue
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	return nil
}
