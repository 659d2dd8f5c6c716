package queue

import (
	"context"

	"github.com/benvon/day-planner/internal/collab"
	"github.com/benvon/day-planner/internal/models"
	"go.uber.org/zap"
)

// QueueMessenger implements collab.Messenger by handing invites to the job
// queue; a worker performs the actual delivery. The send result reports the
// invitees as queued rather than sent.
type QueueMessenger struct {
	queue  JobQueue
	logger *zap.Logger
}

// NewQueueMessenger creates a messenger backed by a job queue
func NewQueueMessenger(q JobQueue, logger *zap.Logger) *QueueMessenger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueMessenger{queue: q, logger: logger}
}

// SendInvites enqueues an invite-dispatch job
func (m *QueueMessenger) SendInvites(ctx context.Context, threadID string, invitees []string, message string) (*models.SendResult, error) {
	job := NewJob(threadID, invitees, message)
	if err := m.queue.Enqueue(ctx, job); err != nil {
		return nil, err
	}
	m.logger.Info("invites_enqueued",
		zap.String("thread_id", threadID),
		zap.String("job_id", job.ID.String()),
		zap.Int("invitee_count", len(invitees)),
	)
	return &models.SendResult{
		Queued:  len(invitees),
		Failed:  []string{},
		Preview: collab.Preview(message),
	}, nil
}
