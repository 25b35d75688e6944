// Package export renders the current form aggregate to a printable
// Certificate of Origin PDF. Rendering is a read-only view over the
// aggregate; it never mutates form state, and any failure surfaces to the
// caller without affecting the session.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"originform/internal/form/models"
)

// document is the subset of pdfcpu's create-from-JSON schema this export
// uses: one page of positioned text lines.
type document struct {
	Pages map[string]page `json:"pages"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []textEntry `json:"text"`
}

type textEntry struct {
	Value    string  `json:"value"`
	Anchor   string  `json:"anchor,omitempty"`
	Dx       float64 `json:"dx,omitempty"`
	Dy       float64 `json:"dy,omitempty"`
	Font     font    `json:"font"`
	Position []int   `json:"position,omitempty"`
}

type font struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

// Certificate writes the aggregate as a PDF to w.
func Certificate(agg *models.FormAggregate, w io.Writer) error {
	doc := buildDocument(agg)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal certificate layout: %w", err)
	}
	if err := api.Create(nil, bytes.NewReader(data), w, nil); err != nil {
		return fmt.Errorf("render certificate pdf: %w", err)
	}
	return nil
}

func buildDocument(agg *models.FormAggregate) document {
	title := textEntry{
		Value:  "CERTIFICATE OF ORIGIN",
		Anchor: "tc",
		Dy:     -40,
		Font:   font{Name: "Helvetica-Bold", Size: 18},
	}

	lines := []string{
		line("Exporter", agg.CompanyName),
		line("Address", agg.PhysicalAddress),
		line("TIN", agg.TINNumber),
		line("Email", agg.EmailAddress),
		line("Origin Criteria", string(agg.OriginCriteria)),
		line("Product", agg.ProductDescription),
		line("HS Code", agg.HSCode),
		line("Country of Export", agg.CountryOfExport),
		line("Destination", agg.DestinationCountry),
		line("FOB Value", agg.FOBValue),
	}
	for i, m := range agg.InputMaterials {
		lines = append(lines, line(
			fmt.Sprintf("Material %d", i+1),
			fmt.Sprintf("%s / %s / %s", m.Description, m.HSCode, m.CountryOfOrigin),
		))
	}
	lines = append(lines,
		line("Declarant", agg.DeclarantName),
		line("Signed", fmt.Sprintf("%s, %s", agg.SignatureName, agg.SignaturePosition)),
	)

	entries := []textEntry{title}
	y := -90.0
	for _, l := range lines {
		entries = append(entries, textEntry{
			Value:  l,
			Anchor: "tl",
			Dx:     40,
			Dy:     y,
			Font:   font{Name: "Helvetica", Size: 11},
		})
		y -= 18
	}

	return document{
		Pages: map[string]page{
			"1": {Content: content{Text: entries}},
		},
	}
}

func line(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s: %s", label, value)
}
