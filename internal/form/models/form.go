// Package models defines the Certificate of Origin form aggregate: the single
// in-memory record holding every field value for the current form session.
package models

// OriginCriteria enumerates the preferential-origin qualification grounds an
// exporter may claim. The empty string means no selection has been made yet.
type OriginCriteria string

const (
	OriginUnset             OriginCriteria = ""
	OriginWhollyObtained    OriginCriteria = "wholly-obtained"
	OriginTariffHeading     OriginCriteria = "tariff-heading"
	OriginValueAddition     OriginCriteria = "value-addition"
	OriginSpecificProcedure OriginCriteria = "specific-procedure"
)

// IsSet reports whether a criteria has been selected.
func (c OriginCriteria) IsSet() bool { return c != OriginUnset }

// Valid reports whether c is one of the known criteria (unset counts).
func (c OriginCriteria) Valid() bool {
	switch c {
	case OriginUnset, OriginWhollyObtained, OriginTariffHeading,
		OriginValueAddition, OriginSpecificProcedure:
		return true
	}
	return false
}

// FormAggregate is the aggregate root for one certificate application.
//
// Invariants:
//   - InputMaterials always holds at least one entry (index 0 is seeded empty
//     at construction and is never removed)
//   - ProcedureDescription is empty whenever OriginCriteria is anything other
//     than specific-procedure
//   - InputMaterial.CertificateRequired is derived from CountryOfOrigin and
//     is never set independently
//
// The JSON shape is the wire format shared with the ingestion gateway and the
// saved-progress snapshot; field names are part of the contract.
type FormAggregate struct {
	// Exporter identity
	CompanyName     string `json:"companyName"`
	PhysicalAddress string `json:"physicalAddress"`
	CityState       string `json:"cityState"`
	PostalCode      string `json:"postalCode"`
	TINNumber       string `json:"tinNumber"`
	ContactPerson   string `json:"contactPerson"`
	PhoneNumber     string `json:"phoneNumber"`
	EmailAddress    string `json:"emailAddress"`
	ApplicationDate string `json:"applicationDate"`

	// Origin criteria
	OriginCriteria       OriginCriteria `json:"originCriteria"`
	ProcedureDescription string         `json:"procedureDescription"`

	// Final product details
	ProductDescription  string `json:"productDescription"`
	BrandName           string `json:"brandName"`
	HSCode              string `json:"hsCode"`
	CountryOfExport     string `json:"countryOfExport"`
	DestinationCountry  string `json:"destinationCountry"`
	CommercialInvoiceNo string `json:"commercialInvoiceNo"`
	InvoiceDate         string `json:"invoiceDate"`
	ExFactoryPrice      string `json:"exFactoryPrice"`
	FOBValue            string `json:"fobValue"`
	QuantityUnit        string `json:"quantityUnit"`
	PackagingType       string `json:"packagingType"`

	InputMaterials []InputMaterial `json:"inputMaterials"`

	ManufacturingProcess string `json:"manufacturingProcess"`

	// Declaration
	DeclarantName     string `json:"declarantName"`
	SignatureName     string `json:"signatureName"`
	SignaturePosition string `json:"signaturePosition"`
	SignatureDate     string `json:"signatureDate"`
}

// NewAggregate returns a defaulted aggregate with the mandatory first input
// material seeded empty.
func NewAggregate() *FormAggregate {
	return &FormAggregate{
		InputMaterials: []InputMaterial{NewInputMaterial()},
	}
}

// Clone returns a deep copy so callers can snapshot without aliasing the
// live materials slice.
func (f *FormAggregate) Clone() *FormAggregate {
	cp := *f
	cp.InputMaterials = make([]InputMaterial, len(f.InputMaterials))
	copy(cp.InputMaterials, f.InputMaterials)
	return &cp
}

// StripAttachments removes every attachment handle in place. Used before the
// aggregate crosses a boundary where binary handles are not durable.
func (f *FormAggregate) StripAttachments() {
	for i := range f.InputMaterials {
		f.InputMaterials[i].CertificateFile = nil
		f.InputMaterials[i].InvoiceFile = nil
	}
}

// Attachments returns every present attachment handle keyed by its
// deterministic part name (certificate_<i> / invoice_<i>).
func (f *FormAggregate) Attachments() map[string]*Attachment {
	out := make(map[string]*Attachment)
	for i, m := range f.InputMaterials {
		if m.CertificateFile != nil {
			out[PartName(SlotCertificate, i)] = m.CertificateFile
		}
		if m.InvoiceFile != nil {
			out[PartName(SlotInvoice, i)] = m.InvoiceFile
		}
	}
	return out
}
