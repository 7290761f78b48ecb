package contract

import (
	"encoding/json"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

// PharmanetSmartContract provides the chaincode surface for tracking drug
// custody across the pharma network. Each exported method assembles a
// Workflow over the invocation's stub and delegates; the workflow holds all
// business rules and never sees Fabric types.
type PharmanetSmartContract struct {
	contractapi.Contract

	// Auth overrides the role/organisation mapping. Zero value means the
	// network defaults.
	Auth AuthConfig
}

// Instantiate is called during chaincode instantiation.
func (s *PharmanetSmartContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("Pharmanet smart contract instantiated/upgraded")
}

func (s *PharmanetSmartContract) workflow(ctx contractapi.TransactionContextInterface) *Workflow {
	auth := s.Auth
	if auth == (AuthConfig{}) {
		auth = DefaultAuthConfig()
	}
	fl := ledger.NewFabricLedger(ctx.GetStub())
	return NewWorkflow(fl, NewFabricIdentityResolver(ctx.GetClientIdentity()), fl, fl, auth)
}

// RegisterCompany registers a new organisation on the network.
func (s *PharmanetSmartContract) RegisterCompany(ctx contractapi.TransactionContextInterface, companyCRN, companyName, location, organisationRole string) (*model.Company, error) {
	return s.workflow(ctx).RegisterCompany(companyCRN, companyName, location, organisationRole)
}

// ViewCompany returns one registered organisation.
func (s *PharmanetSmartContract) ViewCompany(ctx contractapi.TransactionContextInterface, companyCRN string) (*model.Company, error) {
	return s.workflow(ctx).ViewCompany(companyCRN)
}

// GetAllCompanies returns every registered organisation.
func (s *PharmanetSmartContract) GetAllCompanies(ctx contractapi.TransactionContextInterface) ([]model.Company, error) {
	return s.workflow(ctx).GetAllCompanies()
}

// AddDrug registers a new drug unit owned by its manufacturer.
func (s *PharmanetSmartContract) AddDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, mfgDate, expDate, companyCRN string) (*model.DrugAsset, error) {
	return s.workflow(ctx).AddDrug(drugName, serialNo, mfgDate, expDate, companyCRN)
}

// CreatePO records a purchase order between a buyer and an upstream seller.
func (s *PharmanetSmartContract) CreatePO(ctx contractapi.TransactionContextInterface, buyerCRN, sellerCRN, drugName string, quantity int) (*model.PurchaseOrder, error) {
	return s.workflow(ctx).CreatePO(buyerCRN, sellerCRN, drugName, quantity)
}

// ViewPO returns the purchase order for (buyerCRN, drugName).
func (s *PharmanetSmartContract) ViewPO(ctx contractapi.TransactionContextInterface, buyerCRN, drugName string) (*model.PurchaseOrder, error) {
	return s.workflow(ctx).ViewPO(buyerCRN, drugName)
}

// CreateShipment bundles drug units into a shipment against an open
// purchase order. listOfSerialsJSON is a JSON array of serial numbers.
func (s *PharmanetSmartContract) CreateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, listOfSerialsJSON, transporterCRN string) (*model.Shipment, error) {
	var serials []string
	if err := json.Unmarshal([]byte(listOfSerialsJSON), &serials); err != nil {
		return nil, invalidf("listOfSerials must be a JSON array of serial numbers")
	}
	return s.workflow(ctx).CreateShipment(buyerCRN, drugName, serials, transporterCRN)
}

// UpdateShipment confirms delivery and moves custody to the buyer.
func (s *PharmanetSmartContract) UpdateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, transporterCRN string) (*model.Shipment, error) {
	return s.workflow(ctx).UpdateShipment(buyerCRN, drugName, transporterCRN)
}

// ViewShipment returns the shipment record for (buyerCRN, drugName).
func (s *PharmanetSmartContract) ViewShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName string) (*model.Shipment, error) {
	return s.workflow(ctx).ViewShipment(buyerCRN, drugName)
}

// RetailDrug dispenses a drug unit to an end consumer.
func (s *PharmanetSmartContract) RetailDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, retailerCRN, consumerID string) (*model.DrugAsset, error) {
	return s.workflow(ctx).RetailDrug(drugName, serialNo, retailerCRN, consumerID)
}

// ViewDrugCurrentState returns the current record of one drug unit.
func (s *PharmanetSmartContract) ViewDrugCurrentState(ctx contractapi.TransactionContextInterface, drugName, serialNo string) (*model.DrugAsset, error) {
	return s.workflow(ctx).ViewDrugCurrentState(drugName, serialNo)
}

// ViewHistory returns every historical state of one drug unit.
func (s *PharmanetSmartContract) ViewHistory(ctx contractapi.TransactionContextInterface, drugName, serialNo string) ([]model.HistoryEntry, error) {
	return s.workflow(ctx).ViewHistory(drugName, serialNo)
}
