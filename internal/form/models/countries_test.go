package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"originform/internal/form/models"
)

func TestIsPartnerState(t *testing.T) {
	assert.True(t, models.IsPartnerState("Ghana"))
	assert.True(t, models.IsPartnerState("South Africa"))
	assert.False(t, models.IsPartnerState("Nigeria"), "the domestic country is not on the partner list")
	assert.False(t, models.IsPartnerState("United States"))
	assert.False(t, models.IsPartnerState(""))
}

func TestCertificateRequiredFor(t *testing.T) {
	cases := []struct {
		country string
		want    bool
	}{
		{"Ghana", true},
		{"Kenya", true},
		{"Nigeria", false},
		{"United States", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.CertificateRequiredFor(tc.country), "country %q", tc.country)
	}
}
