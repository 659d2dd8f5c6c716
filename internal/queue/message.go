package queue

// Message wraps a Job with its delivery acknowledgement hooks
type Message struct {
	Job  *Job
	ack  func() error
	nack func(requeue bool) error
}

// Ack acknowledges the message
func (m *Message) Ack() error {
	if m.ack == nil {
		return nil
	}
	return m.ack()
}

// Nack negatively acknowledges the message
func (m *Message) Nack(requeue bool) error {
	if m.nack == nil {
		return nil
	}
	return m.nack(requeue)
}
