// Package service orchestrates submission ingestion: attachment upload,
// record persistence, and the notification side-effects.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"originform/internal/ingest/blob"
	"originform/internal/ingest/models"
	"originform/internal/ingest/notify"
	"originform/internal/ingest/store"
	"originform/internal/platform/metrics"
	dErrors "originform/pkg/domain-errors"
)

// uploadConcurrency bounds parallel attachment uploads per submission.
const uploadConcurrency = 4

// EventPublisher announces accepted submissions to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, sub models.Submission) error
}

// Attachment is one binary part received with a submission.
type Attachment struct {
	PartName  string
	Filename  string
	MediaType string
	Content   []byte
}

// IngestRequest carries one parsed submission through the service.
type IngestRequest struct {
	ExporterName  string
	ExporterEmail string
	FormData      json.RawMessage
	Attachments   []Attachment
}

// Service ingests submissions.
type Service struct {
	store     store.SubmissionStore
	blobs     blob.Store
	notifier  notify.Notifier
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	clock     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the submission notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithEventPublisher sets the downstream event publisher.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the received-at timestamp source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New creates the ingestion service. A record store and a blob store are
// required; notifier, publisher, and metrics are optional.
func New(submissions store.SubmissionStore, blobs blob.Store, opts ...Option) (*Service, error) {
	if submissions == nil {
		return nil, errors.New("submission store is required")
	}
	if blobs == nil {
		return nil, errors.New("blob store is required")
	}
	s := &Service{
		store:  submissions,
		blobs:  blobs,
		logger: slog.Default(),
		tracer: otel.Tracer("originform/ingest"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ingest uploads attachments, records the submission, then fires the
// notification and event side-effects. Side-effect failures are logged and
// counted but never roll back the stored record.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (models.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "ingest.submission")
	defer span.End()

	s.metrics.IncSubmissionsReceived()

	if len(req.FormData) == 0 {
		s.metrics.IncSubmissionsFailed()
		return models.Submission{}, dErrors.New(dErrors.CodeBadRequest, "form data is required")
	}
	if !json.Valid(req.FormData) {
		s.metrics.IncSubmissionsFailed()
		return models.Submission{}, dErrors.New(dErrors.CodeBadRequest, "form data is not valid JSON")
	}

	sub := models.Submission{
		ID:            uuid.New().String(),
		ExporterName:  req.ExporterName,
		ExporterEmail: req.ExporterEmail,
		FormData:      req.FormData,
		ReceivedAt:    s.clock().UTC(),
	}
	span.SetAttributes(
		attribute.String("submission.id", sub.ID),
		attribute.Int("submission.attachments", len(req.Attachments)),
	)

	keys, err := s.uploadAttachments(ctx, sub.ID, req.Attachments)
	if err != nil {
		s.metrics.IncSubmissionsFailed()
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeStorage, "failed to store attachments")
	}
	sub.AttachmentKeys = keys

	if err := s.store.Save(ctx, sub); err != nil {
		s.metrics.IncSubmissionsFailed()
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeStorage, "failed to record submission")
	}
	s.metrics.IncSubmissionsStored()

	s.notifyAccepted(ctx, sub)

	s.logger.InfoContext(ctx, "submission recorded",
		"submission_id", sub.ID,
		"exporter_email", sub.ExporterEmail,
		"attachments", len(sub.AttachmentKeys),
	)
	return sub, nil
}

// GetSubmission returns one recorded submission.
func (s *Service) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Submission{}, dErrors.Wrap(err, dErrors.CodeNotFound, "submission not found")
	}
	return sub, nil
}

// ListSubmissions returns the most recently received submissions.
func (s *Service) ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error) {
	subs, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to list submissions")
	}
	return subs, nil
}

func (s *Service) uploadAttachments(ctx context.Context, submissionID string, attachments []Attachment) ([]string, error) {
	keys := make([]string, len(attachments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, att := range attachments {
		g.Go(func() error {
			key := blob.ObjectKey(submissionID, att.PartName, att.Filename)
			if err := s.blobs.Put(gctx, key, att.MediaType, att.Content); err != nil {
				return err
			}
			keys[i] = key
			s.metrics.IncAttachmentsUploaded()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

// notifyAccepted runs the post-store side-effects. Email failure does not
// fail the submission; the record is already durable.
func (s *Service) notifyAccepted(ctx context.Context, sub models.Submission) {
	if s.notifier != nil {
		if err := s.notifier.SubmissionReceived(ctx, sub); err != nil {
			s.metrics.IncNotificationFailures()
			s.logger.ErrorContext(ctx, "notification failed",
				"submission_id", sub.ID,
				"error", err.Error(),
			)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, sub); err != nil {
			s.logger.WarnContext(ctx, "event publish failed",
				"submission_id", sub.ID,
				"error", err.Error(),
			)
		}
	}
}
