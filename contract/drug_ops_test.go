package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDrugInitializesCustody(t *testing.T) {
	env := newTestEnv(t)
	env.registerDefaultCompanies(t)

	drug, err := env.asManufacturer().AddDrug("Paracetamol", "SN100", "2024-01-01", "2026-01-01", "SUN001")
	require.NoError(t, err)

	assert.Equal(t, companyKey(t, "SUN001"), drug.Owner)
	assert.Equal(t, companyKey(t, "SUN001"), drug.Manufacturer)
	assert.Empty(t, drug.Shipments)
	assert.NotNil(t, drug.Shipments)
	assert.False(t, drug.Dispensed())

	// The stored state matches what was returned.
	stored, err := env.asManufacturer().ViewDrugCurrentState("Paracetamol", "SN100")
	require.NoError(t, err)
	assert.Equal(t, drug, stored)
}

func TestAddDrugRequiresManufacturerOrganisation(t *testing.T) {
	env := newTestEnv(t)
	env.registerDefaultCompanies(t)

	for _, w := range []*Workflow{env.asDistributor(), env.asRetailer(), env.asTransporter()} {
		_, err := w.AddDrug("Paracetamol", "SN100", "2024-01-01", "2026-01-01", "SUN001")
		assert.ErrorIs(t, err, ErrAuthorization)
	}

	// Nothing was written by the rejected attempts.
	_, err := env.asManufacturer().ViewDrugCurrentState("Paracetamol", "SN100")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddDrugRejectsDuplicateSerial(t *testing.T) {
	env := newTestEnv(t)
	env.registerDefaultCompanies(t)
	w := env.asManufacturer()

	_, err := w.AddDrug("Paracetamol", "SN100", "2024-01-01", "2026-01-01", "SUN001")
	require.NoError(t, err)

	_, err = w.AddDrug("Paracetamol", "SN100", "2024-02-01", "2026-02-01", "SUN001")
	assert.ErrorIs(t, err, ErrConflict)

	// Same serial under a different drug name is a different unit.
	_, err = w.AddDrug("Ibuprofen", "SN100", "2024-01-01", "2026-01-01", "SUN001")
	assert.NoError(t, err)
}

func TestAddDrugAcceptsUnregisteredManufacturerCRN(t *testing.T) {
	// The manufacturer reference is not resolved against the registry; a
	// dangling CRN is accepted.
	env := newTestEnv(t)

	drug, err := env.asManufacturer().AddDrug("Paracetamol", "SN100", "2024-01-01", "2026-01-01", "SUN999")
	require.NoError(t, err)
	assert.Equal(t, companyKey(t, "SUN999"), drug.Owner)
}

func TestAddDrugValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.asManufacturer().AddDrug("", "SN100", "2024-01-01", "2026-01-01", "SUN001")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.asManufacturer().AddDrug("Paracetamol", "  ", "2024-01-01", "2026-01-01", "SUN001")
	assert.ErrorIs(t, err, ErrValidation)
}
