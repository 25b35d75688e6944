// Package validate is the pre-submission gate over the form aggregate.
// Presence checks only; anything deeper is the ingestion side's concern.
package validate

import (
	"originform/internal/form/models"
	dErrors "originform/pkg/domain-errors"
)

// Check runs the fixed-order presence rules and returns a validation error
// carrying the first failing section's user-facing reason, or nil when the
// aggregate is ready to submit. Short-circuiting on the first failure keeps
// the applicant focused on one section at a time.
//
// Rule order: exporter identity, origin criteria, product details, first
// input material, declaration.
func Check(f *models.FormAggregate) error {
	if f.CompanyName == "" || f.PhysicalAddress == "" || f.TINNumber == "" || f.EmailAddress == "" {
		return reason("please complete all required fields in the Exporter Details section")
	}
	if !f.OriginCriteria.IsSet() {
		return reason("please select an Origin Criteria")
	}
	if f.ProductDescription == "" || f.HSCode == "" || f.CountryOfExport == "" {
		return reason("please complete all required fields in the Final Product Details section")
	}
	if len(f.InputMaterials) == 0 {
		return reason("please provide at least one input material with all required fields")
	}
	first := f.InputMaterials[0]
	if first.Description == "" || first.HSCode == "" || first.CountryOfOrigin == "" {
		return reason("please provide at least one input material with all required fields")
	}
	if f.DeclarantName == "" || f.SignatureName == "" || f.SignaturePosition == "" {
		return reason("please complete the Declaration section")
	}
	return nil
}

func reason(msg string) error {
	return dErrors.New(dErrors.CodeValidation, msg)
}
