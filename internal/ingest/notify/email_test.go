package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/ingest/models"
	"originform/internal/ingest/notify"
)

func submission() models.Submission {
	return models.Submission{
		ID:             "sub-123",
		ExporterName:   "Acme Textiles Ltd",
		ExporterEmail:  "exports@acme.example",
		AttachmentKeys: []string{"submissions/sub-123/certificate_0_cert.pdf"},
		ReceivedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmailNotifierSendsResendRequest(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotBody   map[string]any
		gotHeader string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotHeader = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := notify.NewEmail(notify.EmailConfig{
		BaseURL:    srv.URL,
		APIKey:     "re_test_key",
		From:       "noreply@customs.gov.ng",
		Recipients: []string{"trade-desk@customs.gov.ng"},
	})

	require.NoError(t, n.SubmissionReceived(context.Background(), submission()))

	assert.Equal(t, "/emails", gotPath)
	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "application/json", gotHeader)
	assert.Equal(t, "noreply@customs.gov.ng", gotBody["from"])
	assert.Equal(t, []any{"trade-desk@customs.gov.ng"}, gotBody["to"])
	assert.Equal(t, "New Certificate of Origin Submission", gotBody["subject"])

	html, _ := gotBody["html"].(string)
	assert.Contains(t, html, "Acme Textiles Ltd")
	assert.Contains(t, html, "sub-123")
}

func TestEmailNotifierRejectionSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := notify.NewEmail(notify.EmailConfig{BaseURL: srv.URL, APIKey: "bad"})
	err := n.SubmissionReceived(context.Background(), submission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestEmailNotifierEscapesSubmittedValues(t *testing.T) {
	var gotBody struct {
		HTML string `json:"html"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sub := submission()
	sub.ExporterName = `<script>alert("x")</script>`

	n := notify.NewEmail(notify.EmailConfig{BaseURL: srv.URL})
	require.NoError(t, n.SubmissionReceived(context.Background(), sub))

	assert.NotContains(t, gotBody.HTML, "<script>")
	assert.Contains(t, gotBody.HTML, "&lt;script&gt;")
}

func TestEmailNotifierDerivesNameFromEmail(t *testing.T) {
	var gotBody struct {
		HTML string `json:"html"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sub := submission()
	sub.ExporterName = ""
	sub.ExporterEmail = "ada.okafor@acme.example"

	n := notify.NewEmail(notify.EmailConfig{BaseURL: srv.URL})
	require.NoError(t, n.SubmissionReceived(context.Background(), sub))

	assert.Contains(t, gotBody.HTML, "Ada Okafor")
}
