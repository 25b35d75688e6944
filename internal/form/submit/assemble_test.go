package submit_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/form/models"
	"originform/internal/form/submit"
)

type parsedPayload struct {
	fields map[string]string
	files  map[string]parsedFile
}

type parsedFile struct {
	filename  string
	mediaType string
	content   []byte
}

func parsePayload(t *testing.T, p *submit.Payload) parsedPayload {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(p.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	out := parsedPayload{fields: map[string]string{}, files: map[string]parsedFile{}}
	reader := multipart.NewReader(bytes.NewReader(p.Body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() == "" {
			out.fields[part.FormName()] = string(content)
			continue
		}
		out.files[part.FormName()] = parsedFile{
			filename:  part.FileName(),
			mediaType: part.Header.Get("Content-Type"),
			content:   content,
		}
	}
	return out
}

func TestAssembleFieldsAndParts(t *testing.T) {
	agg := models.NewAggregate()
	agg.CompanyName = "Acme Textiles Ltd"
	agg.EmailAddress = "exports@acme.example"
	agg.InputMaterials = append(agg.InputMaterials, models.NewInputMaterial())
	agg.InputMaterials[0].CertificateFile = &models.Attachment{
		Filename:  "supplier-cert.pdf",
		MediaType: "application/pdf",
		Content:   []byte("%PDF-cert"),
	}
	agg.InputMaterials[1].InvoiceFile = &models.Attachment{
		Filename: "purchase-invoice.png",
		Content:  []byte("png-bytes"),
	}

	payload, err := submit.Assemble(agg)
	require.NoError(t, err)

	parsed := parsePayload(t, payload)

	assert.Equal(t, "Acme Textiles Ltd", parsed.fields[submit.FieldExporterName])
	assert.Equal(t, "exports@acme.example", parsed.fields[submit.FieldExporterEmail])

	cert, ok := parsed.files["certificate_0"]
	require.True(t, ok)
	assert.Equal(t, "supplier-cert.pdf", cert.filename)
	assert.Equal(t, "application/pdf", cert.mediaType)
	assert.Equal(t, []byte("%PDF-cert"), cert.content)

	inv, ok := parsed.files["invoice_1"]
	require.True(t, ok)
	assert.Equal(t, "purchase-invoice.png", inv.filename)
	assert.Equal(t, "application/octet-stream", inv.mediaType, "missing media type falls back")
	assert.Equal(t, []byte("png-bytes"), inv.content)
}

func TestAssembleJSONPartCarriesNamesNotBytes(t *testing.T) {
	agg := models.NewAggregate()
	agg.InputMaterials[0].CertificateFile = &models.Attachment{
		Filename: "supplier-cert.pdf",
		Content:  []byte("%PDF-cert"),
	}

	payload, err := submit.Assemble(agg)
	require.NoError(t, err)
	parsed := parsePayload(t, payload)

	var form struct {
		InputMaterials []struct {
			CertificateFile *string `json:"certificateFile"`
			InvoiceFile     *string `json:"invoiceFile"`
		} `json:"inputMaterials"`
	}
	require.NoError(t, json.Unmarshal([]byte(parsed.fields[submit.FieldFormData]), &form))
	require.Len(t, form.InputMaterials, 1)
	require.NotNil(t, form.InputMaterials[0].CertificateFile)
	assert.Equal(t, "supplier-cert.pdf", *form.InputMaterials[0].CertificateFile)
	assert.Nil(t, form.InputMaterials[0].InvoiceFile, "absent handle serializes as null")
	assert.NotContains(t, parsed.fields[submit.FieldFormData], "%PDF-cert")
}

func TestAssembleWithoutAttachments(t *testing.T) {
	payload, err := submit.Assemble(models.NewAggregate())
	require.NoError(t, err)

	parsed := parsePayload(t, payload)
	assert.Empty(t, parsed.files)
	assert.Contains(t, parsed.fields, submit.FieldFormData)
}
