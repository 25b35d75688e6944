package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/form/models"
)

func TestNewAggregateSeedsFirstMaterial(t *testing.T) {
	f := models.NewAggregate()

	require.Len(t, f.InputMaterials, 1)
	assert.Equal(t, models.NewInputMaterial(), f.InputMaterials[0])
	assert.Equal(t, models.OriginUnset, f.OriginCriteria)
}

func TestCloneDoesNotAliasMaterials(t *testing.T) {
	f := models.NewAggregate()
	f.InputMaterials[0].Description = "raw cotton"

	cp := f.Clone()
	cp.InputMaterials[0].Description = "dyed cotton"
	cp.InputMaterials = append(cp.InputMaterials, models.NewInputMaterial())

	assert.Equal(t, "raw cotton", f.InputMaterials[0].Description)
	assert.Len(t, f.InputMaterials, 1)
}

func TestStripAttachments(t *testing.T) {
	f := models.NewAggregate()
	f.InputMaterials = append(f.InputMaterials, models.NewInputMaterial())
	f.InputMaterials[0].CertificateFile = &models.Attachment{Filename: "cert.pdf", Content: []byte("x")}
	f.InputMaterials[1].InvoiceFile = &models.Attachment{Filename: "inv.pdf", Content: []byte("y")}

	f.StripAttachments()

	for _, m := range f.InputMaterials {
		assert.Nil(t, m.CertificateFile)
		assert.Nil(t, m.InvoiceFile)
	}
}

func TestAttachmentsKeyedByPartName(t *testing.T) {
	f := models.NewAggregate()
	f.InputMaterials = append(f.InputMaterials, models.NewInputMaterial())
	f.InputMaterials[0].CertificateFile = &models.Attachment{Filename: "cert.pdf"}
	f.InputMaterials[1].InvoiceFile = &models.Attachment{Filename: "inv.pdf"}

	atts := f.Attachments()

	require.Len(t, atts, 2)
	assert.Equal(t, "cert.pdf", atts["certificate_0"].Filename)
	assert.Equal(t, "inv.pdf", atts["invoice_1"].Filename)
}

func TestAggregateJSONFieldNames(t *testing.T) {
	f := models.NewAggregate()
	f.CompanyName = "Acme Textiles Ltd"
	f.TINNumber = "12345678-0001"
	f.HSCode = "5208.11"

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "Acme Textiles Ltd", raw["companyName"])
	assert.Equal(t, "12345678-0001", raw["tinNumber"])
	assert.Equal(t, "5208.11", raw["hsCode"])
	assert.Contains(t, raw, "inputMaterials")
	assert.Contains(t, raw, "procedureDescription")
}

func TestAttachmentJSONCollapsesToFilename(t *testing.T) {
	f := models.NewAggregate()
	f.InputMaterials[0].CertificateFile = &models.Attachment{
		Filename:  "supplier-cert.pdf",
		MediaType: "application/pdf",
		Content:   []byte("binary"),
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var raw struct {
		InputMaterials []struct {
			CertificateFile *string `json:"certificateFile"`
			InvoiceFile     *string `json:"invoiceFile"`
		} `json:"inputMaterials"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.InputMaterials, 1)
	require.NotNil(t, raw.InputMaterials[0].CertificateFile)
	assert.Equal(t, "supplier-cert.pdf", *raw.InputMaterials[0].CertificateFile)
	assert.Nil(t, raw.InputMaterials[0].InvoiceFile)

	var restored models.FormAggregate
	require.NoError(t, json.Unmarshal(data, &restored))
	require.NotNil(t, restored.InputMaterials[0].CertificateFile)
	assert.Equal(t, "supplier-cert.pdf", restored.InputMaterials[0].CertificateFile.Filename)
	assert.Empty(t, restored.InputMaterials[0].CertificateFile.Content)
}

func TestOriginCriteriaValid(t *testing.T) {
	assert.True(t, models.OriginUnset.Valid())
	assert.True(t, models.OriginWhollyObtained.Valid())
	assert.True(t, models.OriginSpecificProcedure.Valid())
	assert.False(t, models.OriginCriteria("handmade").Valid())

	assert.False(t, models.OriginUnset.IsSet())
	assert.True(t, models.OriginValueAddition.IsSet())
}

func TestPartName(t *testing.T) {
	assert.Equal(t, "certificate_0", models.PartName(models.SlotCertificate, 0))
	assert.Equal(t, "invoice_3", models.PartName(models.SlotInvoice, 3))
}
