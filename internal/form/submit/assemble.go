// Package submit converts a validated form aggregate into the multipart
// payload the ingestion gateway accepts, performs the single network round
// trip, and drives the UI-observable submission state machine.
package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"

	"originform/internal/form/models"
)

// Multipart field names shared with the ingestion gateway.
const (
	FieldFormData      = "formDataJson"
	FieldExporterName  = "exporterName"
	FieldExporterEmail = "exporterEmail"
)

// Payload is an assembled multipart request body ready to post.
type Payload struct {
	ContentType string
	Body        []byte
}

// Assemble builds the transport payload: a JSON part carrying the full
// aggregate with every attachment handle collapsed to its file name (or
// null), plus one binary part per present handle, named certificate_<i> /
// invoice_<i>. Binary content is never embedded in the JSON part.
func Assemble(agg *models.FormAggregate) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(FieldExporterName, agg.CompanyName); err != nil {
		return nil, fmt.Errorf("write exporter name: %w", err)
	}
	if err := w.WriteField(FieldExporterEmail, agg.EmailAddress); err != nil {
		return nil, fmt.Errorf("write exporter email: %w", err)
	}

	formJSON, err := json.Marshal(agg)
	if err != nil {
		return nil, fmt.Errorf("marshal form data: %w", err)
	}
	if err := w.WriteField(FieldFormData, string(formJSON)); err != nil {
		return nil, fmt.Errorf("write form data: %w", err)
	}

	attachments := agg.Attachments()
	names := make([]string, 0, len(attachments))
	for name := range attachments {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic part order

	for _, name := range names {
		att := attachments[name]
		part, err := createFilePart(w, name, att)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := part.Write(att.Content); err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize payload: %w", err)
	}

	return &Payload{
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func createFilePart(w *multipart.Writer, name string, att *models.Attachment) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, att.Filename))
	mediaType := att.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	h.Set("Content-Type", mediaType)
	return w.CreatePart(h)
}
