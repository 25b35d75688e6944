package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"unicode"

	"originform/internal/ingest/models"
)

// EmailConfig configures the transactional-email notifier.
type EmailConfig struct {
	BaseURL    string // e.g. https://api.resend.com
	APIKey     string
	From       string
	Recipients []string
}

// EmailNotifier posts a notification through a transactional-email HTTP API
// (Resend-compatible): POST {base}/emails with a bearer key and a JSON body.
type EmailNotifier struct {
	cfg        EmailConfig
	httpClient *http.Client
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithHTTPClient overrides the HTTP client, e.g. to set timeouts.
func WithHTTPClient(hc *http.Client) EmailOption {
	return func(n *EmailNotifier) {
		if hc != nil {
			n.httpClient = hc
		}
	}
}

// NewEmail creates the email notifier.
func NewEmail(cfg EmailConfig, opts ...EmailOption) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *EmailNotifier) SubmissionReceived(ctx context.Context, sub models.Submission) error {
	body, err := json.Marshal(emailRequest{
		From:    n.cfg.From,
		To:      n.cfg.Recipients,
		Subject: "New Certificate of Origin Submission",
		HTML:    renderSubmissionHTML(sub),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(n.cfg.BaseURL, "/")+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected: status %d", resp.StatusCode)
	}
	return nil
}

// renderSubmissionHTML builds the notification body. All submitted values are
// escaped; they are applicant-controlled.
func renderSubmissionHTML(sub models.Submission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Exporter:</strong> %s (%s)</p>",
		html.EscapeString(displayName(sub)), html.EscapeString(sub.ExporterEmail))
	fmt.Fprintf(&b, "<p><strong>Submission ID:</strong> %s</p>", html.EscapeString(sub.ID))
	fmt.Fprintf(&b, "<p><strong>Received:</strong> %s</p>", sub.ReceivedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "<p><strong>Attachments:</strong> %d</p>", len(sub.AttachmentKeys))
	return b.String()
}

// displayName prefers the declared exporter name and falls back to a name
// derived from the local part of the exporter's email address.
func displayName(sub models.Submission) string {
	if sub.ExporterName != "" {
		return sub.ExporterName
	}
	local := sub.ExporterEmail
	if at := strings.IndexByte(local, '@'); at > 0 {
		local = local[:at]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Unknown Exporter"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
