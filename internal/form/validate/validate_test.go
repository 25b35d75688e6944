package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/form/models"
	"originform/internal/form/validate"
	dErrors "originform/pkg/domain-errors"
)

// readyAggregate returns an aggregate that passes every presence rule.
func readyAggregate() *models.FormAggregate {
	f := models.NewAggregate()
	f.CompanyName = "Acme Textiles Ltd"
	f.PhysicalAddress = "12 Marina Road, Lagos"
	f.TINNumber = "12345678-0001"
	f.EmailAddress = "exports@acme.example"
	f.OriginCriteria = models.OriginValueAddition
	f.ProductDescription = "Woven cotton fabric"
	f.HSCode = "5208.11"
	f.CountryOfExport = "Nigeria"
	f.InputMaterials[0].Description = "Raw cotton"
	f.InputMaterials[0].HSCode = "5201.00"
	f.InputMaterials[0].CountryOfOrigin = "Nigeria"
	f.DeclarantName = "A. Okafor"
	f.SignatureName = "A. Okafor"
	f.SignaturePosition = "Export Manager"
	return f
}

func TestCheckReadyAggregatePasses(t *testing.T) {
	assert.NoError(t, validate.Check(readyAggregate()))
}

func TestCheckReportsFirstFailingSection(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.FormAggregate)
		message string
	}{
		{
			name:    "missing exporter field",
			mutate:  func(f *models.FormAggregate) { f.TINNumber = "" },
			message: "please complete all required fields in the Exporter Details section",
		},
		{
			name:    "no origin criteria selected",
			mutate:  func(f *models.FormAggregate) { f.OriginCriteria = models.OriginUnset },
			message: "please select an Origin Criteria",
		},
		{
			name:    "missing product field",
			mutate:  func(f *models.FormAggregate) { f.HSCode = "" },
			message: "please complete all required fields in the Final Product Details section",
		},
		{
			name:    "first material incomplete",
			mutate:  func(f *models.FormAggregate) { f.InputMaterials[0].CountryOfOrigin = "" },
			message: "please provide at least one input material with all required fields",
		},
		{
			name:    "missing declaration field",
			mutate:  func(f *models.FormAggregate) { f.SignaturePosition = "" },
			message: "please complete the Declaration section",
		},
		{
			name: "exporter section reported before later failures",
			mutate: func(f *models.FormAggregate) {
				f.CompanyName = ""
				f.HSCode = ""
				f.DeclarantName = ""
			},
			message: "please complete all required fields in the Exporter Details section",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := readyAggregate()
			tc.mutate(f)

			err := validate.Check(f)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.message, dErrors.MessageOf(err, ""))
		})
	}
}

func TestCheckIgnoresLaterMaterials(t *testing.T) {
	f := readyAggregate()
	f.InputMaterials = append(f.InputMaterials, models.NewInputMaterial())

	assert.NoError(t, validate.Check(f), "only the first material is subject to presence rules")
}
