// Package progress persists form state between sessions so an applicant can
// resume a half-finished application. Saving is best effort: a failed save
// warns the user but never blocks form use, and a corrupt snapshot loads as
// if nothing was saved.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"originform/internal/form/models"
	dErrors "originform/pkg/domain-errors"
	"originform/pkg/sentinel"
)

// Durable keys. The payload and its save timestamp are written and read as a
// pair; neither is meaningful alone.
const (
	keyPayload = "customsFormData"
	keySavedAt = "customsFormSavedAt"
)

// KV is the synchronous key-value store the snapshot is persisted to. Get
// returns sentinel.ErrNotFound when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store is the persistence adapter over a KV backend.
type Store struct {
	kv     KV
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the save-timestamp source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger used for best-effort failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a progress store over the given KV backend.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save snapshots the aggregate (attachment handles nulled, they are not
// durable) and writes payload plus timestamp. A rejected write surfaces as a
// storage error the caller shows to the user.
func (s *Store) Save(ctx context.Context, agg *models.FormAggregate) error {
	snapshot := agg.Clone()
	snapshot.StripAttachments()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to save form progress")
	}

	if err := s.kv.Set(ctx, keyPayload, string(payload)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to save form progress")
	}
	if err := s.kv.Set(ctx, keySavedAt, s.clock().UTC().Format(time.RFC3339)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to save form progress")
	}
	return nil
}

// Load reads the snapshot pair. A nil aggregate means nothing usable was
// saved. Malformed payloads are treated as absent rather than errors so a
// corrupt snapshot can never lock an applicant out of the form. The loaded
// data is merged onto a defaulted aggregate, so snapshots written by an older
// schema still hydrate every current field.
func (s *Store) Load(ctx context.Context) (*models.FormAggregate, time.Time, error) {
	payload, err := s.kv.Get(ctx, keyPayload)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, dErrors.Wrap(err, dErrors.CodeStorage, "failed to load form progress")
	}

	agg := models.NewAggregate()
	if err := json.Unmarshal([]byte(payload), agg); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed form snapshot", "error", err)
		return nil, time.Time{}, nil
	}
	if len(agg.InputMaterials) == 0 {
		agg.InputMaterials = []models.InputMaterial{models.NewInputMaterial()}
	}
	agg.StripAttachments()

	savedAt := s.loadSavedAt(ctx)
	return agg, savedAt, nil
}

// Clear removes both keys. Idempotent; failures are logged and never surface
// to the caller.
func (s *Store) Clear(ctx context.Context) {
	for _, key := range []string{keyPayload, keySavedAt} {
		if err := s.kv.Remove(ctx, key); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to clear form progress", "key", key, "error", err)
		}
	}
}

func (s *Store) loadSavedAt(ctx context.Context) time.Time {
	raw, err := s.kv.Get(ctx, keySavedAt)
	if err != nil {
		return time.Time{}
	}
	savedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return savedAt
}
