package collab

import (
	"context"

	"github.com/benvon/day-planner/internal/models"
	"go.uber.org/zap"
)

// PreviewLength caps the message preview recorded on send results
const PreviewLength = 180

// Messenger dispatches invite messages. The workflow treats dispatch as an
// opaque collaborator call; failures degrade to an empty result upstream.
type Messenger interface {
	SendInvites(ctx context.Context, threadID string, invitees []string, message string) (*models.SendResult, error)
}

// StubMessenger "delivers" invites by logging them. It reports every invitee
// as sent, matching the demo behavior of the original system.
type StubMessenger struct {
	logger *zap.Logger
}

// NewStubMessenger creates a stub messenger
func NewStubMessenger(logger *zap.Logger) *StubMessenger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubMessenger{logger: logger}
}

// SendInvites records the dispatch and returns a successful result
func (m *StubMessenger) SendInvites(ctx context.Context, threadID string, invitees []string, message string) (*models.SendResult, error) {
	m.logger.Info("invites_dispatched",
		zap.String("thread_id", threadID),
		zap.Int("invitee_count", len(invitees)),
	)
	return &models.SendResult{
		Sent:    len(invitees),
		Failed:  []string{},
		Preview: Preview(message),
	}, nil
}

// Preview truncates a message to the preview length
func Preview(message string) string {
	if len(message) > PreviewLength {
		return message[:PreviewLength]
	}
	return message
}
