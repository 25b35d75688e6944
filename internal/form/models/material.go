package models

import (
	"encoding/json"
	"fmt"
)

// AttachmentSlot identifies which of the two per-material attachment handles
// an operation targets.
type AttachmentSlot string

const (
	SlotCertificate AttachmentSlot = "certificate"
	SlotInvoice     AttachmentSlot = "invoice"
)

// Valid reports whether the slot names a known attachment position.
func (s AttachmentSlot) Valid() bool {
	return s == SlotCertificate || s == SlotInvoice
}

// PartName builds the deterministic multipart part name for a slot and
// material index. The ingestion gateway parses these back.
func PartName(slot AttachmentSlot, index int) string {
	return fmt.Sprintf("%s_%d", slot, index)
}

// Attachment is an opaque handle to a user-selected binary file. The content
// never crosses a serialization boundary: on the wire and in saved progress
// the handle collapses to its file name (or null when absent).
type Attachment struct {
	Filename  string
	MediaType string
	Content   []byte
}

// MarshalJSON serializes the handle as its file name only.
func (a Attachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Filename)
}

// UnmarshalJSON restores a name-only handle. Binary content is never durable,
// so a handle read back from JSON carries no bytes.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	a.Filename = name
	a.MediaType = ""
	a.Content = nil
	return nil
}

// InputMaterial is one row of the input-materials schedule. The sequence is
// append-only from the caller's perspective; only index 0 is subject to
// mandatory-field validation.
type InputMaterial struct {
	Description          string `json:"description"`
	HSCode               string `json:"hsCode"`
	CountryOfOrigin      string `json:"countryOfOrigin"`
	InvoiceNo            string `json:"invoiceNo"`
	PurchaseDate         string `json:"purchaseDate"`
	ValueUSD             string `json:"valueUSD"`
	PercentageFinalValue string `json:"percentageFinalValue"`

	// CertificateRequired is derived from CountryOfOrigin; see
	// CertificateRequiredFor.
	CertificateRequired bool `json:"certificateRequired"`

	CertificateFile *Attachment `json:"certificateFile"`
	InvoiceFile     *Attachment `json:"invoiceFile"`
}

// NewInputMaterial returns an empty material row.
func NewInputMaterial() InputMaterial {
	return InputMaterial{}
}

// Attach replaces the handle in the given slot. File type and size are not
// inspected here.
func (m *InputMaterial) Attach(slot AttachmentSlot, file *Attachment) {
	switch slot {
	case SlotCertificate:
		m.CertificateFile = file
	case SlotInvoice:
		m.InvoiceFile = file
	}
}
