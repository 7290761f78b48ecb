package contract

import (
	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

// --- Purchase Order Workflow ---

// validTransferDirection decides whether seller may supply buyer. Transfer
// must run down the hierarchy: the seller sits strictly closer to the
// manufacturer than the buyer (seller.HierarchyKey < buyer.HierarchyKey).
// The network this was ported from shipped the inverted comparison
// (seller-buyer < 1 failed the transfer); flipping the direction is a
// one-line change here if acceptance against that network requires it.
func validTransferDirection(seller, buyer *model.Company) bool {
	return seller.HierarchyKey < buyer.HierarchyKey
}

// CreatePO records a buyer/seller agreement for a quantity of one drug,
// keyed by (buyerCRN, drugName). Only a Distributor or Retailer organisation
// may initiate a purchase order, and the seller must be upstream of the
// buyer. An open order for the same buyer and drug is not overwritten.
func (w *Workflow) CreatePO(buyerCRN, sellerCRN, drugName string, quantity int) (*model.PurchaseOrder, error) {
	caller, err := w.requireCallerOrg(model.RoleDistributor, model.RoleRetailer)
	if err != nil {
		return nil, err
	}
	logger.Infof("Organisation %q creating purchase order: buyer %q, seller %q, drug %q, quantity %d",
		caller, buyerCRN, sellerCRN, drugName, quantity)

	if err := validateRequiredString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(sellerCRN, "sellerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, invalidf("quantity must be positive, got %d", quantity)
	}

	buyer, buyerKey, err := w.getCompanyByCRN(buyerCRN)
	if err != nil {
		return nil, err
	}
	seller, sellerKey, err := w.getCompanyByCRN(sellerCRN)
	if err != nil {
		return nil, err
	}

	if !validTransferDirection(seller, buyer) {
		return nil, invalidf("transfer of drug can take place in hierarchical manner only: seller %q (level %d) is not upstream of buyer %q (level %d)",
			sellerCRN, seller.HierarchyKey, buyerCRN, buyer.HierarchyKey)
	}

	purchaseKey, err := ledger.CompositeKey(ledger.PurchaseOrderNamespace, buyerCRN, drugName)
	if err != nil {
		return nil, invalidf("invalid purchase order reference %q/%q", buyerCRN, drugName)
	}
	existing, err := w.store.Get(purchaseKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("purchase order for buyer %q and drug %q already exists", buyerCRN, drugName)
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	po := model.PurchaseOrder{
		POID:      purchaseKey,
		DrugName:  drugName,
		Quantity:  quantity,
		Buyer:     buyerKey,
		Seller:    sellerKey,
		Status:    model.POOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := w.putRecord(purchaseKey, &po); err != nil {
		return nil, err
	}

	w.emitEvent("PurchaseOrderCreated", map[string]interface{}{
		"buyerCrn": buyerCRN, "sellerCrn": sellerCRN, "drugName": drugName, "quantity": quantity,
	})
	logger.Infof("Purchase order created for buyer %q, drug %q", buyerCRN, drugName)
	return &po, nil
}

// ViewPO fetches the purchase order for (buyerCRN, drugName).
func (w *Workflow) ViewPO(buyerCRN, drugName string) (*model.PurchaseOrder, error) {
	logger.Debugf("ViewPO: querying purchase order for buyer %q, drug %q", buyerCRN, drugName)
	if err := validateRequiredString(buyerCRN, "buyerCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(drugName, "drugName"); err != nil {
		return nil, err
	}
	po, _, err := w.getPurchaseOrder(buyerCRN, drugName)
	return po, err
}
