package models

// DomesticCountry is the issuing state. Materials sourced domestically never
// require a supplier certificate of origin.
const DomesticCountry = "Nigeria"

// PartnerStates lists the AfCFTA State Parties. A material sourced from a
// partner state (other than the domestic country) must carry a supplier
// certificate of origin.
var PartnerStates = []string{
	"Algeria",
	"Angola",
	"Benin",
	"Botswana",
	"Burkina Faso",
	"Burundi",
	"Cabo Verde",
	"Cameroon",
	"Central African Republic",
	"Chad",
	"Comoros",
	"Congo, Dem. Rep.",
	"Congo, Rep.",
	"Cote d'Ivoire",
	"Djibouti",
	"Egypt",
	"Equatorial Guinea",
	"Eritrea",
	"Eswatini",
	"Ethiopia",
	"Gabon",
	"Gambia",
	"Ghana",
	"Guinea",
	"Guinea-Bissau",
	"Kenya",
	"Lesotho",
	"Liberia",
	"Libya",
	"Madagascar",
	"Malawi",
	"Mali",
	"Mauritania",
	"Mauritius",
	"Morocco",
	"Mozambique",
	"Namibia",
	"Niger",
	"Rwanda",
	"Sao Tome and Principe",
	"Senegal",
	"Seychelles",
	"Sierra Leone",
	"Somalia",
	"South Africa",
	"South Sudan",
	"Sudan",
	"Tanzania",
	"Togo",
	"Tunisia",
	"Uganda",
	"Zambia",
	"Zimbabwe",
}

var partnerSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(PartnerStates))
	for _, c := range PartnerStates {
		s[c] = struct{}{}
	}
	return s
}()

// IsPartnerState reports whether country is an AfCFTA State Party.
func IsPartnerState(country string) bool {
	_, ok := partnerSet[country]
	return ok
}

// CertificateRequiredFor derives the mandatory-certificate flag for a
// material's country of origin: partner state and not the domestic country.
func CertificateRequiredFor(country string) bool {
	return IsPartnerState(country) && country != DomesticCountry
}
