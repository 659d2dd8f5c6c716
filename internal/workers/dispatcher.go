// Package workers contains the background consumers that drain the job
// queue. The invite dispatcher performs the deliveries the API deferred.
package workers

import (
	"context"
	"fmt"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/queue"
	"go.uber.org/zap"
)

// InviteDispatcher consumes invite-dispatch jobs and delivers them through
// a Messenger. Failed jobs are retried up to their limit, then dead-lettered.
type InviteDispatcher struct {
	queue     queue.JobQueue
	messenger collab.Messenger
	prefetch  int
	logger    *zap.Logger
}

// NewInviteDispatcher creates an invite dispatcher
func NewInviteDispatcher(q queue.JobQueue, messenger collab.Messenger, prefetch int, logger *zap.Logger) *InviteDispatcher {
	if prefetch <= 0 {
		prefetch = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InviteDispatcher{queue: q, messenger: messenger, prefetch: prefetch, logger: logger}
}

// Run consumes jobs until the context is cancelled
func (d *InviteDispatcher) Run(ctx context.Context) error {
	msgs, errs, err := d.queue.Consume(ctx, d.prefetch)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case consumeErr, ok := <-errs:
			if ok && consumeErr != nil {
				d.logger.Warn("queue_consume_error", zap.Error(consumeErr))
			}
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			d.handle(ctx, msg)
		}
	}
}

func (d *InviteDispatcher) handle(ctx context.Context, msg *queue.Message) {
	job := msg.Job
	result, err := d.messenger.SendInvites(ctx, job.ThreadID, job.Invitees, job.Message)
	if err == nil {
		d.logger.Info("invite_job_done",
			zap.String("job_id", job.ID.String()),
			zap.String("thread_id", job.ThreadID),
			zap.Int("sent", result.Sent),
		)
		if ackErr := msg.Ack(); ackErr != nil {
			d.logger.Warn("job_ack_failed", zap.String("job_id", job.ID.String()), zap.Error(ackErr))
		}
		return
	}

	d.logger.Warn("invite_job_failed",
		zap.String("job_id", job.ID.String()),
		zap.String("thread_id", job.ThreadID),
		zap.Int("retry_count", job.RetryCount),
		zap.Error(err),
	)

	if job.CanRetry() {
		job.IncrementRetry()
		if enqErr := d.queue.Enqueue(ctx, job); enqErr == nil {
			_ = msg.Ack()
			return
		}
	}
	// Exhausted retries (or re-enqueue failed): dead-letter
	_ = msg.Nack(false)
}
