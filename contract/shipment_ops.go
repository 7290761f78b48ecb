package contract

import (
	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

// --- Shipment Workflow ---

// CreateShipment bundles the listed drug units into a shipment fulfilling
// the open purchase order for (buyerCRN, drugName). The serial count must
// equal the order quantity exactly; no partial shipment is ever written.
// Every asset is resolved before any is mutated, so a missing serial aborts
// the operation with nothing staged for commit.
func (w *Workflow) CreateShipment(buyerCRN, drugName string, listOfSerials []string, transporterCRN string) (*model.Shipment, error) {
	caller, err := w.identity.CallerOrganization()
	if err != nil {
		return nil, unauthorizedf("failed to resolve caller organisation: %v", err)
	}
	logger.Infof("Organisation %q creating shipment for buyer %q, drug %q with %d units via transporter %q",
		caller, buyerCRN, drugName, len(listOfSerials), transporterCRN)

	if err := validateRequiredString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(transporterCRN, "transporterCRN"); err != nil {
		return nil, err
	}

	_, transporterKey, err := w.getCompanyByCRN(transporterCRN)
	if err != nil {
		return nil, err
	}
	po, poKey, err := w.getPurchaseOrder(buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	if po.Status != model.POOpen {
		return nil, invalidf("purchase order for buyer %q and drug %q is already %s", buyerCRN, drugName, po.Status)
	}
	if len(listOfSerials) != po.Quantity {
		return nil, invalidf("purchase order quantity mismatch: order is for %d units, shipment lists %d", po.Quantity, len(listOfSerials))
	}

	// Resolve every unit before mutating any, so a missing serial cannot
	// leave a partially reassigned batch behind.
	assets := make([]*model.DrugAsset, 0, len(listOfSerials))
	assetKeys := make([]string, 0, len(listOfSerials))
	for _, serialNo := range listOfSerials {
		drug, drugKey, err := w.getDrug(drugName, serialNo)
		if err != nil {
			return nil, err
		}
		assets = append(assets, drug)
		assetKeys = append(assetKeys, drugKey)
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	shipmentKey, err := ledger.CompositeKey(ledger.ShipmentNamespace, buyerCRN, drugName)
	if err != nil {
		return nil, invalidf("invalid shipment reference %q/%q", buyerCRN, drugName)
	}
	existing, err := w.store.Get(shipmentKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("shipment for buyer %q and drug %q already exists", buyerCRN, drugName)
	}

	for i, drug := range assets {
		drug.Owner = transporterKey
		drug.UpdatedAt = now
		if err := w.putRecord(assetKeys[i], drug); err != nil {
			return nil, err
		}
	}

	shipment := model.Shipment{
		ShipmentID:  shipmentKey,
		Creator:     caller,
		BuyerCRN:    buyerCRN,
		Buyer:       po.Buyer,
		DrugName:    drugName,
		Assets:      assetKeys,
		Transporter: transporterKey,
		Status:      model.ShipmentInTransit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := w.putRecord(shipmentKey, &shipment); err != nil {
		return nil, err
	}

	po.Status = model.POFulfilled
	po.UpdatedAt = now
	if err := w.putRecord(poKey, po); err != nil {
		return nil, err
	}

	w.emitEvent("ShipmentCreated", map[string]interface{}{
		"buyerCrn": buyerCRN, "drugName": drugName, "transporterCrn": transporterCRN, "units": len(assetKeys),
	})
	logger.Infof("Shipment for buyer %q, drug %q created in-transit with %d units", buyerCRN, drugName, len(assetKeys))
	return &shipment, nil
}

// UpdateShipment confirms delivery of an in-transit shipment. Only the
// Transporter organisation may confirm. Custody of every bundled unit moves
// to the buyer and the shipment key is appended to each unit's provenance
// list, each asset read-modify-written exactly once.
func (w *Workflow) UpdateShipment(buyerCRN, drugName, transporterCRN string) (*model.Shipment, error) {
	caller, err := w.requireCallerOrg(model.RoleTransporter)
	if err != nil {
		return nil, err
	}
	logger.Infof("Transporter %q delivering shipment for buyer %q, drug %q", caller, buyerCRN, drugName)

	if err := validateRequiredString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(transporterCRN, "transporterCRN"); err != nil {
		return nil, err
	}

	shipment, shipmentKey, err := w.getShipment(buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	if shipment.Status != model.ShipmentInTransit {
		return nil, invalidf("shipment for buyer %q and drug %q is already %s", buyerCRN, drugName, shipment.Status)
	}
	transporterKey, err := ledger.CompositeKey(ledger.CompanyNamespace, transporterCRN)
	if err != nil {
		return nil, invalidf("invalid company CRN %q", transporterCRN)
	}
	if shipment.Transporter != transporterKey {
		return nil, invalidf("shipment for buyer %q and drug %q is not carried by transporter %q", buyerCRN, drugName, transporterCRN)
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	for _, assetKey := range shipment.Assets {
		var drug model.DrugAsset
		found, err := w.getRecord(assetKey, &drug)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFoundf("drug asset %q referenced by shipment does not exist", assetKey)
		}
		drug.Owner = shipment.Buyer
		drug.Shipments = append(drug.Shipments, shipmentKey)
		drug.UpdatedAt = now
		if err := w.putRecord(assetKey, &drug); err != nil {
			return nil, err
		}
	}

	shipment.Status = model.ShipmentDelivered
	shipment.UpdatedAt = now
	if err := w.putRecord(shipmentKey, shipment); err != nil {
		return nil, err
	}

	w.emitEvent("ShipmentDelivered", map[string]interface{}{
		"buyerCrn": buyerCRN, "drugName": drugName, "transporterCrn": transporterCRN, "units": len(shipment.Assets),
	})
	logger.Infof("Shipment for buyer %q, drug %q delivered; custody of %d units moved to buyer", buyerCRN, drugName, len(shipment.Assets))
	return shipment, nil
}
