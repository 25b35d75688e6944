// Package session holds the mutable form state for one applicant session.
// It is the single owner of the aggregate: every UI-level mutation funnels
// through here, and persistence or network activity is triggered explicitly
// by the caller, never as a side effect of an update.
package session

import (
	"originform/internal/form/models"
	dErrors "originform/pkg/domain-errors"
)

// Session is the form state container. It is not safe for concurrent use;
// the owning event loop serializes access by construction.
type Session struct {
	agg *models.FormAggregate
}

// New creates a session with a defaulted aggregate.
func New() *Session {
	return &Session{agg: models.NewAggregate()}
}

// Restore creates a session from a previously loaded aggregate, e.g. a saved
// progress snapshot. A nil aggregate falls back to defaults.
func Restore(agg *models.FormAggregate) *Session {
	if agg == nil {
		return New()
	}
	return &Session{agg: agg}
}

// Aggregate exposes the live aggregate. Callers must treat it as read-only
// and route mutations through the session.
func (s *Session) Aggregate() *models.FormAggregate {
	return s.agg
}

// Snapshot returns a deep copy safe to hand across a boundary.
func (s *Session) Snapshot() *models.FormAggregate {
	return s.agg.Clone()
}

// ApplyFieldPatch merges a partial scalar update, last-write-wins per field.
func (s *Session) ApplyFieldPatch(p models.FieldPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Apply(s.agg)
	return nil
}

// UpdateMaterialAt merges a partial update into the input material at index.
// An out-of-bounds index is an error, not a silent no-op, so a UI bug cannot
// quietly drop a row edit.
func (s *Session) UpdateMaterialAt(index int, p models.MaterialPatch) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	p.Apply(&s.agg.InputMaterials[index])
	return nil
}

// AppendMaterial adds one empty input material row. There is no upper bound
// and no removal operation.
func (s *Session) AppendMaterial() {
	s.agg.InputMaterials = append(s.agg.InputMaterials, models.NewInputMaterial())
}

// AttachFile replaces the attachment handle in the given slot of the material
// at index. File type and size are not validated.
func (s *Session) AttachFile(index int, slot models.AttachmentSlot, file *models.Attachment) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if !slot.Valid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown attachment slot %q", slot)
	}
	s.agg.InputMaterials[index].Attach(slot, file)
	return nil
}

// SetCountryOfOrigin updates a material's country of origin and recomputes
// its derived certificate-required flag.
func (s *Session) SetCountryOfOrigin(index int, country string) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	m := &s.agg.InputMaterials[index]
	m.CountryOfOrigin = country
	m.CertificateRequired = models.CertificateRequiredFor(country)
	return nil
}

// Reset discards all state and returns the session to defaults. Called after
// a successful submission acknowledgment.
func (s *Session) Reset() {
	s.agg = models.NewAggregate()
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.agg.InputMaterials) {
		return dErrors.Newf(dErrors.CodeNotFound, "input material %d does not exist", index)
	}
	return nil
}
