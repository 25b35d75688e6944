package submit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/form/models"
	"originform/internal/form/submit"
	dErrors "originform/pkg/domain-errors"
)

func assembled(t *testing.T) *submit.Payload {
	t.Helper()
	payload, err := submit.Assemble(models.NewAggregate())
	require.NoError(t, err)
	return payload
}

func TestClientSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Form submitted successfully!","submission_id":"sub-123"}`))
	}))
	defer srv.Close()

	client := submit.NewClient(srv.URL)
	ack, err := client.Submit(context.Background(), assembled(t))
	require.NoError(t, err)
	assert.Equal(t, "sub-123", ack.SubmissionID)
	assert.Equal(t, "Form submitted successfully!", ack.Message)
}

func TestClientSubmitServerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"form data is missing"}`))
	}))
	defer srv.Close()

	client := submit.NewClient(srv.URL)
	_, err := client.Submit(context.Background(), assembled(t))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSubmission))
	assert.Equal(t, "form submission failed: form data is missing", dErrors.MessageOf(err, ""))
}

func TestClientSubmitUnparseableFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := submit.NewClient(srv.URL)
	_, err := client.Submit(context.Background(), assembled(t))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSubmission))
	assert.Equal(t, "form submission failed", dErrors.MessageOf(err, ""))
}

func TestClientSubmitSuccessFalseDespite200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"storage unavailable"}`))
	}))
	defer srv.Close()

	client := submit.NewClient(srv.URL)
	_, err := client.Submit(context.Background(), assembled(t))
	require.Error(t, err)
	assert.Equal(t, "form submission failed: storage unavailable", dErrors.MessageOf(err, ""))
}

func TestClientSubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused

	client := submit.NewClient(srv.URL)
	_, err := client.Submit(context.Background(), assembled(t))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSubmission))
}
