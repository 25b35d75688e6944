// Package notify sends the side-effect notifications triggered by an
// accepted submission. Notification failure never rolls back the stored
// record; the caller logs and counts it.
package notify

import (
	"context"
	"sync"

	"originform/internal/ingest/models"
)

// Notifier announces an accepted submission.
type Notifier interface {
	SubmissionReceived(ctx context.Context, sub models.Submission) error
}

// Recorder captures notifications for tests.
type Recorder struct {
	mu   sync.Mutex
	subs []models.Submission
	err  error
}

// NewRecorder creates a recording notifier.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SubmissionReceived(_ context.Context, sub models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.subs = append(r.subs, sub)
	return nil
}

// Received returns the notified submissions.
func (r *Recorder) Received() []models.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Submission{}, r.subs...)
}

// Fail makes every subsequent notification return err.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
