package contract

import "github.com/rohitroyrr8/pharma/model"

// --- Retail Dispensing ---

// RetailDrug hands a drug unit over to an end consumer. Only the Retailer
// organisation may dispense. The owner becomes the opaque consumer
// identifier and the dispensing retailer is recorded as the final handling
// party; the state is terminal, no further custody transfer applies.
func (w *Workflow) RetailDrug(drugName, serialNo, retailerCRN, consumerID string) (*model.DrugAsset, error) {
	caller, err := w.requireCallerOrg(model.RoleRetailer)
	if err != nil {
		return nil, err
	}
	logger.Infof("Retailer %q dispensing drug %q serial %q", caller, drugName, serialNo)

	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(serialNo, "serialNo"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(retailerCRN, "retailerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(consumerID, "consumerID"); err != nil {
		return nil, err
	}

	drug, drugKey, err := w.getDrug(drugName, serialNo)
	if err != nil {
		return nil, err
	}
	if drug.Dispensed() {
		return nil, invalidf("drug %q serial %q has already been dispensed to a consumer", drugName, serialNo)
	}

	_, retailerKey, err := w.getCompanyByCRN(retailerCRN)
	if err != nil {
		return nil, err
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	drug.Owner = consumerID
	drug.Retailer = retailerKey
	drug.UpdatedAt = now
	if err := w.putRecord(drugKey, drug); err != nil {
		return nil, err
	}

	w.emitEvent("DrugRetailed", map[string]interface{}{
		"drugName": drugName, "serialNo": serialNo, "retailerCrn": retailerCRN,
	})
	logger.Infof("Drug %q serial %q dispensed by retailer %q", drugName, serialNo, retailerCRN)
	return drug, nil
}
