package contract

import "github.com/rohitroyrr8/pharma/model"

// --- Provenance Query ---

// ViewDrugCurrentState fetches the current record of one drug unit.
func (w *Workflow) ViewDrugCurrentState(drugName, serialNo string) (*model.DrugAsset, error) {
	logger.Debugf("ViewDrugCurrentState: querying drug %q serial %q", drugName, serialNo)
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(serialNo, "serialNo"); err != nil {
		return nil, err
	}
	drug, _, err := w.getDrug(drugName, serialNo)
	return drug, err
}

// ViewHistory returns every historical state of one drug unit in the
// ledger's history order. A unit that was never registered is an error; a
// registered unit always has at least one entry.
func (w *Workflow) ViewHistory(drugName, serialNo string) ([]model.HistoryEntry, error) {
	logger.Debugf("ViewHistory: querying history of drug %q serial %q", drugName, serialNo)
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(serialNo, "serialNo"); err != nil {
		return nil, err
	}

	_, drugKey, err := w.getDrug(drugName, serialNo)
	if err != nil {
		return nil, err
	}
	entries, err := w.store.History(drugKey)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

// ViewShipment fetches the shipment record for (buyerCRN, drugName).
func (w *Workflow) ViewShipment(buyerCRN, drugName string) (*model.Shipment, error) {
	logger.Debugf("ViewShipment: querying shipment for buyer %q, drug %q", buyerCRN, drugName)
	if err := validateRequiredString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	shipment, _, err := w.getShipment(buyerCRN, drugName)
	return shipment, err
}
