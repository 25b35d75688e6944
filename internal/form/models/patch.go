package models

import dErrors "originform/pkg/domain-errors"

// FieldPatch is a partial update over the aggregate's scalar fields. Nil
// pointers leave the corresponding field untouched; set pointers win
// last-write per field. Input materials are patched through MaterialPatch,
// never here.
type FieldPatch struct {
	CompanyName     *string `json:"companyName,omitempty"`
	PhysicalAddress *string `json:"physicalAddress,omitempty"`
	CityState       *string `json:"cityState,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`
	TINNumber       *string `json:"tinNumber,omitempty"`
	ContactPerson   *string `json:"contactPerson,omitempty"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	EmailAddress    *string `json:"emailAddress,omitempty"`
	ApplicationDate *string `json:"applicationDate,omitempty"`

	OriginCriteria       *OriginCriteria `json:"originCriteria,omitempty"`
	ProcedureDescription *string         `json:"procedureDescription,omitempty"`

	ProductDescription  *string `json:"productDescription,omitempty"`
	BrandName           *string `json:"brandName,omitempty"`
	HSCode              *string `json:"hsCode,omitempty"`
	CountryOfExport     *string `json:"countryOfExport,omitempty"`
	DestinationCountry  *string `json:"destinationCountry,omitempty"`
	CommercialInvoiceNo *string `json:"commercialInvoiceNo,omitempty"`
	InvoiceDate         *string `json:"invoiceDate,omitempty"`
	ExFactoryPrice      *string `json:"exFactoryPrice,omitempty"`
	FOBValue            *string `json:"fobValue,omitempty"`
	QuantityUnit        *string `json:"quantityUnit,omitempty"`
	PackagingType       *string `json:"packagingType,omitempty"`

	ManufacturingProcess *string `json:"manufacturingProcess,omitempty"`

	DeclarantName     *string `json:"declarantName,omitempty"`
	SignatureName     *string `json:"signatureName,omitempty"`
	SignaturePosition *string `json:"signaturePosition,omitempty"`
	SignatureDate     *string `json:"signatureDate,omitempty"`
}

// Validate rejects patches carrying values the aggregate could never hold.
func (p *FieldPatch) Validate() error {
	if p == nil {
		return dErrors.New(dErrors.CodeBadRequest, "patch is required")
	}
	if p.OriginCriteria != nil && !p.OriginCriteria.Valid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown origin criteria %q", *p.OriginCriteria)
	}
	return nil
}

// Apply merges the patch into f. Whenever the patch touches OriginCriteria,
// the dependent-field invariant is enforced: any criteria other than
// specific-procedure forces ProcedureDescription empty, regardless of prior
// value or what else the patch carried.
func (p *FieldPatch) Apply(f *FormAggregate) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&f.CompanyName, p.CompanyName)
	setString(&f.PhysicalAddress, p.PhysicalAddress)
	setString(&f.CityState, p.CityState)
	setString(&f.PostalCode, p.PostalCode)
	setString(&f.TINNumber, p.TINNumber)
	setString(&f.ContactPerson, p.ContactPerson)
	setString(&f.PhoneNumber, p.PhoneNumber)
	setString(&f.EmailAddress, p.EmailAddress)
	setString(&f.ApplicationDate, p.ApplicationDate)

	if p.OriginCriteria != nil {
		f.OriginCriteria = *p.OriginCriteria
	}
	setString(&f.ProcedureDescription, p.ProcedureDescription)

	setString(&f.ProductDescription, p.ProductDescription)
	setString(&f.BrandName, p.BrandName)
	setString(&f.HSCode, p.HSCode)
	setString(&f.CountryOfExport, p.CountryOfExport)
	setString(&f.DestinationCountry, p.DestinationCountry)
	setString(&f.CommercialInvoiceNo, p.CommercialInvoiceNo)
	setString(&f.InvoiceDate, p.InvoiceDate)
	setString(&f.ExFactoryPrice, p.ExFactoryPrice)
	setString(&f.FOBValue, p.FOBValue)
	setString(&f.QuantityUnit, p.QuantityUnit)
	setString(&f.PackagingType, p.PackagingType)

	setString(&f.ManufacturingProcess, p.ManufacturingProcess)

	setString(&f.DeclarantName, p.DeclarantName)
	setString(&f.SignatureName, p.SignatureName)
	setString(&f.SignaturePosition, p.SignaturePosition)
	setString(&f.SignatureDate, p.SignatureDate)

	if p.OriginCriteria != nil && f.OriginCriteria != OriginSpecificProcedure {
		f.ProcedureDescription = ""
	}
}

// MaterialPatch is a partial update over one input material's scalar fields.
// CertificateRequired is deliberately absent: it is derived from the country
// of origin and never independently settable.
type MaterialPatch struct {
	Description          *string `json:"description,omitempty"`
	HSCode               *string `json:"hsCode,omitempty"`
	CountryOfOrigin      *string `json:"countryOfOrigin,omitempty"`
	InvoiceNo            *string `json:"invoiceNo,omitempty"`
	PurchaseDate         *string `json:"purchaseDate,omitempty"`
	ValueUSD             *string `json:"valueUSD,omitempty"`
	PercentageFinalValue *string `json:"percentageFinalValue,omitempty"`
}

// Apply merges the patch into m.
func (p *MaterialPatch) Apply(m *InputMaterial) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&m.Description, p.Description)
	setString(&m.HSCode, p.HSCode)
	setString(&m.CountryOfOrigin, p.CountryOfOrigin)
	setString(&m.InvoiceNo, p.InvoiceNo)
	setString(&m.PurchaseDate, p.PurchaseDate)
	setString(&m.ValueUSD, p.ValueUSD)
	setString(&m.PercentageFinalValue, p.PercentageFinalValue)
}

// Ptr is a convenience for building patches.
func Ptr[T any](v T) *T { return &v }
