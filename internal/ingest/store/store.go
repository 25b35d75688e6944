// Package store persists submission records. Implementations are
// interface-driven so the gateway can run against in-memory storage in tests
// and Postgres in production without rewiring business code.
package store

import (
	"context"

	"originform/internal/ingest/models"
)

// SubmissionStore records accepted submissions.
type SubmissionStore interface {
	Save(ctx context.Context, sub models.Submission) error
	FindByID(ctx context.Context, id string) (models.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]models.Submission, error)
}
