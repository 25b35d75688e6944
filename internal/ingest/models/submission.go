// Package models defines the records the ingestion gateway persists.
package models

import (
	"encoding/json"
	"time"
)

// Submission is one durably recorded certificate application. FormData is the
// raw aggregate JSON exactly as the client sent it; attachments live in blob
// storage and are referenced by object key only.
type Submission struct {
	ID             string          `json:"id"`
	ExporterName   string          `json:"exporter_name"`
	ExporterEmail  string          `json:"exporter_email"`
	FormData       json.RawMessage `json:"form_data"`
	AttachmentKeys []string        `json:"attachment_keys"`
	ReceivedAt     time.Time       `json:"received_at"`
}

// IngestResponse is the wire envelope returned to the submitting client.
type IngestResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id,omitempty"`
}
