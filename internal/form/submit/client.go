package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	dErrors "originform/pkg/domain-errors"
)

// Ack is the ingestion gateway's acknowledgment of a stored submission.
type Ack struct {
	SubmissionID string `json:"submission_id"`
	Message      string `json:"message"`
}

// ingestResponse mirrors the gateway's response envelope.
type ingestResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id"`
}

// Client posts assembled payloads to the ingestion endpoint. No retries, no
// resumable upload; timeouts are the injected http.Client's concern.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. to set timeouts.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a submission client for the given ingestion endpoint URL.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit performs the single network round trip. Transport failures and
// non-success responses surface as submission errors carrying the
// server-reported reason when one is parseable, else a generic message.
func (c *Client) Submit(ctx context.Context, payload *Payload) (*Ack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeSubmission, "form submission failed")
	}
	req.Header.Set("Content-Type", payload.ContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeSubmission, "form submission failed")
	}
	defer resp.Body.Close()

	var body ingestResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (decodeErr == nil && !body.Success) {
		reason := "form submission failed"
		if decodeErr == nil && body.Message != "" {
			reason = fmt.Sprintf("form submission failed: %s", body.Message)
		}
		return nil, dErrors.New(dErrors.CodeSubmission, reason)
	}
	if decodeErr != nil {
		return nil, dErrors.Wrap(decodeErr, dErrors.CodeSubmission, "form submission failed")
	}

	msg := body.Message
	if msg == "" {
		msg = "form submitted successfully"
	}
	return &Ack{SubmissionID: body.SubmissionID, Message: msg}, nil
}
