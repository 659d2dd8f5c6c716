// Package queue carries invite-dispatch jobs from the API to the worker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Job is one invite-dispatch request
type Job struct {
	ID         uuid.UUID `json:"id"`
	ThreadID   string    `json:"thread_id"`
	Invitees   []string  `json:"invitees"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	RetryCount int       `json:"retry_count"`
	MaxRetries int       `json:"max_retries"`
}

// NewJob creates an invite-dispatch job
func NewJob(threadID string, invitees []string, message string) *Job {
	return &Job{
		ID:         uuid.New(),
		ThreadID:   threadID,
		Invitees:   invitees,
		Message:    message,
		CreatedAt:  time.Now(),
		MaxRetries: 3,
	}
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
