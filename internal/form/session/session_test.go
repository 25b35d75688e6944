package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"originform/internal/form/models"
	"originform/internal/form/session"
	dErrors "originform/pkg/domain-errors"
)

func TestNewSessionStartsDefaulted(t *testing.T) {
	sess := session.New()

	require.Len(t, sess.Aggregate().InputMaterials, 1)
	assert.Equal(t, models.OriginUnset, sess.Aggregate().OriginCriteria)
}

func TestRestoreNilFallsBackToDefaults(t *testing.T) {
	sess := session.Restore(nil)
	require.Len(t, sess.Aggregate().InputMaterials, 1)
}

func TestApplyFieldPatch(t *testing.T) {
	sess := session.New()

	err := sess.ApplyFieldPatch(models.FieldPatch{
		CompanyName: models.Ptr("Acme Textiles Ltd"),
		HSCode:      models.Ptr("5208.11"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Textiles Ltd", sess.Aggregate().CompanyName)
	assert.Equal(t, "5208.11", sess.Aggregate().HSCode)

	err = sess.ApplyFieldPatch(models.FieldPatch{
		OriginCriteria: models.Ptr(models.OriginCriteria("handmade")),
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Empty(t, sess.Aggregate().OriginCriteria, "a rejected patch must not be applied")
}

func TestAppendAndUpdateMaterial(t *testing.T) {
	sess := session.New()
	sess.AppendMaterial()
	require.Len(t, sess.Aggregate().InputMaterials, 2)

	err := sess.UpdateMaterialAt(1, models.MaterialPatch{
		Description: models.Ptr("raw cotton"),
		ValueUSD:    models.Ptr("1200"),
	})
	require.NoError(t, err)
	assert.Equal(t, "raw cotton", sess.Aggregate().InputMaterials[1].Description)

	err = sess.UpdateMaterialAt(2, models.MaterialPatch{Description: models.Ptr("x")})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestAttachFile(t *testing.T) {
	sess := session.New()
	att := &models.Attachment{Filename: "cert.pdf", MediaType: "application/pdf", Content: []byte("x")}

	require.NoError(t, sess.AttachFile(0, models.SlotCertificate, att))
	assert.Same(t, att, sess.Aggregate().InputMaterials[0].CertificateFile)

	err := sess.AttachFile(0, models.AttachmentSlot("receipt"), att)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	err = sess.AttachFile(5, models.SlotInvoice, att)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestSetCountryOfOriginDerivesCertificateFlag(t *testing.T) {
	sess := session.New()

	require.NoError(t, sess.SetCountryOfOrigin(0, "Ghana"))
	assert.True(t, sess.Aggregate().InputMaterials[0].CertificateRequired)

	require.NoError(t, sess.SetCountryOfOrigin(0, "Nigeria"))
	assert.False(t, sess.Aggregate().InputMaterials[0].CertificateRequired)

	require.NoError(t, sess.SetCountryOfOrigin(0, "United States"))
	assert.False(t, sess.Aggregate().InputMaterials[0].CertificateRequired)
}

func TestSnapshotIsDetached(t *testing.T) {
	sess := session.New()
	snap := sess.Snapshot()

	require.NoError(t, sess.UpdateMaterialAt(0, models.MaterialPatch{Description: models.Ptr("raw cotton")}))
	assert.Empty(t, snap.InputMaterials[0].Description)
}

func TestResetRestoresDefaults(t *testing.T) {
	sess := session.New()
	require.NoError(t, sess.ApplyFieldPatch(models.FieldPatch{CompanyName: models.Ptr("Acme")}))
	sess.AppendMaterial()

	sess.Reset()

	assert.Empty(t, sess.Aggregate().CompanyName)
	assert.Len(t, sess.Aggregate().InputMaterials, 1)
}
