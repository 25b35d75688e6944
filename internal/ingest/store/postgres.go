package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"originform/internal/ingest/models"
	"originform/pkg/sentinel"
)

// PostgresSubmissionStore persists submissions in PostgreSQL.
type PostgresSubmissionStore struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed submission store.
func NewPostgres(db *sql.DB) *PostgresSubmissionStore {
	return &PostgresSubmissionStore{db: db}
}

// Schema is the table this store requires. Applied by migrations in
// production and by the integration test suite directly.
const Schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id              TEXT PRIMARY KEY,
	exporter_name   TEXT NOT NULL,
	exporter_email  TEXT NOT NULL,
	form_data       JSONB NOT NULL,
	attachment_keys TEXT[] NOT NULL DEFAULT '{}',
	received_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS submissions_received_at_idx ON submissions (received_at DESC);
`

// EnsureSchema creates the submissions table if it does not exist.
func (s *PostgresSubmissionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

func (s *PostgresSubmissionStore) Save(ctx context.Context, sub models.Submission) error {
	query := `
		INSERT INTO submissions (id, exporter_name, exporter_email, form_data, attachment_keys, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		sub.ID, sub.ExporterName, sub.ExporterEmail,
		[]byte(sub.FormData), pq.Array(sub.AttachmentKeys), sub.ReceivedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *PostgresSubmissionStore) FindByID(ctx context.Context, id string) (models.Submission, error) {
	query := `
		SELECT id, exporter_name, exporter_email, form_data, attachment_keys, received_at
		FROM submissions WHERE id = $1
	`
	var sub models.Submission
	var formData []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.ExporterName, &sub.ExporterEmail,
		&formData, pq.Array(&sub.AttachmentKeys), &sub.ReceivedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Submission{}, sentinel.ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("find submission: %w", err)
	}
	sub.FormData = formData
	return sub, nil
}

func (s *PostgresSubmissionStore) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, exporter_name, exporter_email, form_data, attachment_keys, received_at
		FROM submissions ORDER BY received_at DESC LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var sub models.Submission
		var formData []byte
		if err := rows.Scan(
			&sub.ID, &sub.ExporterName, &sub.ExporterEmail,
			&formData, pq.Array(&sub.AttachmentKeys), &sub.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.FormData = formData
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}
