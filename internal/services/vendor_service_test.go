package services

import (
	"testing"

	"backoffice-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVendorTaxExemptRequiresEIN(t *testing.T) {
	svc := newVendorService(t, setupTestDB(t))

	_, err := svc.CreateVendor(&models.CreateVendorRequest{
		Name:        "Acme Industrial",
		IsTaxExempt: true,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ein", verr.Fields[0].Field)
}

func TestCreateVendorEINRequiresTaxExempt(t *testing.T) {
	svc := newVendorService(t, setupTestDB(t))

	_, err := svc.CreateVendor(&models.CreateVendorRequest{
		Name: "Acme Industrial",
		EIN:  "12-3456789",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "isTaxExempt", verr.Fields[0].Field)
}

func TestCreateVendorPhoneAndEmail(t *testing.T) {
	svc := newVendorService(t, setupTestDB(t))

	_, err := svc.CreateVendor(&models.CreateVendorRequest{
		Name:  "Acme Industrial",
		Phone: "555-1234",
		Email: "not-an-email",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	vendor, err := svc.CreateVendor(&models.CreateVendorRequest{
		Name:        "Acme Industrial",
		Phone:       "5550001234",
		Email:       "sales@acme.example",
		EIN:         "12-3456789",
		IsTaxExempt: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), vendor.RowVersion)
}

func TestUpdateVendorVersionConflict(t *testing.T) {
	svc := newVendorService(t, setupTestDB(t))

	vendor, err := svc.CreateVendor(&models.CreateVendorRequest{Name: "Acme Industrial"})
	require.NoError(t, err)

	_, err = svc.UpdateVendor(vendor.ID, &models.UpdateVendorRequest{
		Name:       "Acme Industrial Supply",
		RowVersion: 1,
	})
	require.NoError(t, err)

	_, err = svc.UpdateVendor(vendor.ID, &models.UpdateVendorRequest{
		Name:       "Acme Supply Co",
		RowVersion: 1,
	})
	var cerr *VersionConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, int64(2), cerr.CurrentVersion)
	require.NotEmpty(t, cerr.Conflicts)
	assert.Equal(t, "name", cerr.Conflicts[0].Field)
	assert.Equal(t, "Current value: Acme Industrial Supply", cerr.Conflicts[0].CurrentValue)
}

func TestArchiveVendor(t *testing.T) {
	svc := newVendorService(t, setupTestDB(t))

	vendor, err := svc.CreateVendor(&models.CreateVendorRequest{Name: "Acme Industrial"})
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveVendor(vendor.ID))

	active, err := svc.ListVendors()
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := svc.ListArchivedVendors()
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, vendor.ID, archived[0].ID)
}
