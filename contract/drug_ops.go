package contract

import (
	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

// --- Drug Asset Registry ---

// AddDrug registers a new drug unit keyed by (drugName, serialNo), owned by
// the manufacturer identified by companyCRN. Only a caller from the
// Manufacturer organisation may add drugs. The manufacturer reference is not
// resolved against the company registry; the unit is accepted even if the
// CRN has not been registered yet.
func (w *Workflow) AddDrug(drugName, serialNo, mfgDate, expDate, companyCRN string) (*model.DrugAsset, error) {
	caller, err := w.requireCallerOrg(model.RoleManufacturer)
	if err != nil {
		return nil, err
	}
	logger.Infof("Manufacturer %q adding drug %q serial %q", caller, drugName, serialNo)

	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(serialNo, "serialNo"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(mfgDate, "mfgDate"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(expDate, "expDate"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(companyCRN, "companyCRN"); err != nil {
		return nil, err
	}

	productKey, err := ledger.CompositeKey(ledger.DrugNamespace, drugName, serialNo)
	if err != nil {
		return nil, invalidf("invalid drug reference %q/%q", drugName, serialNo)
	}
	existing, err := w.store.Get(productKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("drug %q with serial %q is already registered", drugName, serialNo)
	}

	manufacturerKey, err := ledger.CompositeKey(ledger.CompanyNamespace, companyCRN)
	if err != nil {
		return nil, invalidf("invalid company CRN %q", companyCRN)
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	drug := model.DrugAsset{
		ProductID:    productKey,
		DrugName:     drugName,
		SerialNo:     serialNo,
		Manufacturer: manufacturerKey,
		MfgDate:      mfgDate,
		ExpDate:      expDate,
		Owner:        manufacturerKey,
		Shipments:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := w.putRecord(productKey, &drug); err != nil {
		return nil, err
	}

	w.emitEvent("DrugAdded", map[string]interface{}{
		"drugName": drugName, "serialNo": serialNo, "manufacturerCrn": companyCRN,
	})
	logger.Infof("Drug %q serial %q registered to manufacturer %q", drugName, serialNo, companyCRN)
	return &drug, nil
}
