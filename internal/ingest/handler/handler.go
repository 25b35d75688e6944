// Package handler is the thin HTTP layer over the ingestion service. It
// parses the multipart submission payload and maps domain errors onto the
// response envelope; business logic stays in the service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"originform/internal/form/submit"
	"originform/internal/ingest/models"
	"originform/internal/ingest/service"
	"originform/internal/platform/middleware"
	dErrors "originform/pkg/domain-errors"
)

// maxPayloadBytes caps one multipart submission, attachments included.
const maxPayloadBytes = 32 << 20

// Service defines the ingestion operations the handler needs.
type Service interface {
	Ingest(ctx context.Context, req service.IngestRequest) (models.Submission, error)
	GetSubmission(ctx context.Context, id string) (models.Submission, error)
	ListSubmissions(ctx context.Context, limit int) ([]models.Submission, error)
}

// Handler handles submission endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// New creates a submission Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the submission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.Logger(h.logger))
	sub.Use(middleware.Timeout(30 * time.Second))
	sub.Post("/api/submissions", h.handleCreate)
	sub.Get("/api/submissions", h.handleList)
	sub.Get("/api/submissions/{id}", h.handleGet)

	r.Mount("/", sub)
}

// handleCreate ingests one multipart submission: a formDataJson field plus
// zero or more named binary parts.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadBytes)
	if err := r.ParseMultipartForm(maxPayloadBytes); err != nil {
		h.logger.WarnContext(ctx, "invalid multipart payload",
			"request_id", requestID,
			"error", err.Error(),
		)
		h.writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart payload"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	req := service.IngestRequest{
		ExporterName:  r.FormValue(submit.FieldExporterName),
		ExporterEmail: r.FormValue(submit.FieldExporterEmail),
		FormData:      json.RawMessage(r.FormValue(submit.FieldFormData)),
	}

	attachments, err := h.readAttachments(r)
	if err != nil {
		h.logger.WarnContext(ctx, "unreadable attachment part",
			"request_id", requestID,
			"error", err.Error(),
		)
		h.writeError(w, dErrors.New(dErrors.CodeBadRequest, "unreadable attachment"))
		return
	}
	req.Attachments = attachments

	sub, err := h.svc.Ingest(ctx, req)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "failed to ingest submission",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, models.IngestResponse{
		Success:      true,
		Message:      "form submitted successfully; a confirmation email will follow",
		SubmissionID: sub.ID,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sub, err := h.svc.GetSubmission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	subs, err := h.svc.ListSubmissions(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	h.writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) readAttachments(r *http.Request) ([]service.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var out []service.Attachment
	for partName, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			out = append(out, service.Attachment{
				PartName:  partName,
				Filename:  fh.Filename,
				MediaType: fh.Header.Get("Content-Type"),
				Content:   content,
			})
		}
	}
	return out, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto the response envelope the form client
// expects: {success:false, message}.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		message = de.Message
	}
	h.writeJSON(w, status, models.IngestResponse{Success: false, Message: message})
}
