package submit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"originform/internal/form/session"
	"originform/internal/form/validate"
)

// ErrCancelled is returned when the applicant declines the confirmation step.
// It is benign: the aggregate is untouched and the flow is back to idle.
var ErrCancelled = errors.New("submission cancelled")

// ErrInFlight is returned when a submission is attempted while another is
// still in flight. The submitting state gates the action so a double-click
// can never fire two uploads.
var ErrInFlight = errors.New("submission already in progress")

// State is the UI-observable phase of the submission flow.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateConfirming State = "confirming"
	StateSubmitting State = "submitting"
)

// ConfirmFunc is the confirmation hook shown between validation and the
// network call. Returning false cancels the submission.
type ConfirmFunc func() bool

// Submitter abstracts the network client so the flow is testable without a
// server.
type Submitter interface {
	Submit(ctx context.Context, payload *Payload) (*Ack, error)
}

// Flow drives one session through
//
//	idle → validating → confirming → submitting → idle
//
// On success the session resets to defaults; on any failure the aggregate is
// retained for retry and the flow returns to idle with the reason.
type Flow struct {
	session *session.Session
	client  Submitter
	logger  *slog.Logger

	mu    sync.Mutex
	state State
}

// NewFlow creates a flow for the given session and submission client.
func NewFlow(sess *session.Session, client Submitter, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		session: sess,
		client:  client,
		logger:  logger,
		state:   StateIdle,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submitting reports whether a submission is in flight.
func (f *Flow) Submitting() bool {
	return f.State() == StateSubmitting
}

// Submit validates, confirms, assembles, and posts the current aggregate.
// Every failure path leaves the aggregate intact and the flow idle.
func (f *Flow) Submit(ctx context.Context, confirm ConfirmFunc) (*Ack, error) {
	if !f.begin() {
		return nil, ErrInFlight
	}
	defer f.setState(StateIdle)

	if err := validate.Check(f.session.Aggregate()); err != nil {
		return nil, err
	}

	f.setState(StateConfirming)
	if confirm != nil && !confirm() {
		return nil, ErrCancelled
	}

	f.setState(StateSubmitting)
	payload, err := Assemble(f.session.Snapshot())
	if err != nil {
		return nil, err
	}

	ack, err := f.client.Submit(ctx, payload)
	if err != nil {
		f.logger.WarnContext(ctx, "submission failed, form retained for retry", "error", err)
		return nil, err
	}

	f.session.Reset()
	f.logger.InfoContext(ctx, "submission acknowledged", "submission_id", ack.SubmissionID)
	return ack, nil
}

// begin transitions idle → validating; reports false when not idle.
func (f *Flow) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return false
	}
	f.state = StateValidating
	return true
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
