package contract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hyperledger/fabric/common/flogging"
	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

var logger = flogging.MustGetLogger("pharmanet.contract")

const maxStringInputLength = 256

// Workflow carries the capabilities one transaction runs against: the
// versioned store, the caller's identity, the transaction clock, an optional
// event sink and the role/organisation mapping. All contract operations are
// methods on it; the Fabric layer builds one per invocation and tests build
// one over the in-memory store.
type Workflow struct {
	store    ledger.Store
	identity IdentityResolver
	clock    ledger.Clock
	events   ledger.EventSink
	auth     AuthConfig
}

// NewWorkflow assembles a workflow from its injected capabilities. The event
// sink may be nil, in which case events are dropped.
func NewWorkflow(store ledger.Store, identity IdentityResolver, clock ledger.Clock, events ledger.EventSink, auth AuthConfig) *Workflow {
	return &Workflow{store: store, identity: identity, clock: clock, events: events, auth: auth}
}

// --- Authorization helpers ---

// requireCallerOrg verifies the caller belongs to the organisation configured
// for one of the given roles and returns the caller's organisation.
func (w *Workflow) requireCallerOrg(roles ...model.OrganisationRole) (string, error) {
	caller, err := w.identity.CallerOrganization()
	if err != nil {
		return "", unauthorizedf("failed to resolve caller organisation: %v", err)
	}
	allowed := make([]string, 0, len(roles))
	for _, role := range roles {
		org, ok := w.auth.OrgForRole(role)
		if !ok {
			continue
		}
		if caller == org {
			return caller, nil
		}
		allowed = append(allowed, string(role))
	}
	return "", unauthorizedf("organisation %q is not authorised to initiate this transaction (requires %s)",
		caller, strings.Join(allowed, " or "))
}

// --- Codec helpers (encode/decode around the store) ---

func (w *Workflow) putRecord(key string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return invalidf("failed to marshal record for key %q", key)
	}
	return w.store.Put(key, data)
}

// getRecord fetches and decodes one record. found is false when the key has
// never been written; the caller decides whether that is an error.
func (w *Workflow) getRecord(key string, record interface{}) (bool, error) {
	data, err := w.store.Get(key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, record); err != nil {
		return false, invalidf("failed to unmarshal record for key %q", key)
	}
	return true, nil
}

func (w *Workflow) getCompanyByCRN(crn string) (*model.Company, string, error) {
	key, err := ledger.CompositeKey(ledger.CompanyNamespace, crn)
	if err != nil {
		return nil, "", invalidf("invalid company CRN %q", crn)
	}
	var company model.Company
	found, err := w.getRecord(key, &company)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, key, notFoundf("company with CRN %q does not exist", crn)
	}
	return &company, key, nil
}

func (w *Workflow) getDrug(drugName, serialNo string) (*model.DrugAsset, string, error) {
	key, err := ledger.CompositeKey(ledger.DrugNamespace, drugName, serialNo)
	if err != nil {
		return nil, "", invalidf("invalid drug reference %q/%q", drugName, serialNo)
	}
	var drug model.DrugAsset
	found, err := w.getRecord(key, &drug)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, key, notFoundf("drug %q with serial %q does not exist", drugName, serialNo)
	}
	return &drug, key, nil
}

func (w *Workflow) getPurchaseOrder(buyerCRN, drugName string) (*model.PurchaseOrder, string, error) {
	key, err := ledger.CompositeKey(ledger.PurchaseOrderNamespace, buyerCRN, drugName)
	if err != nil {
		return nil, "", invalidf("invalid purchase order reference %q/%q", buyerCRN, drugName)
	}
	var po model.PurchaseOrder
	found, err := w.getRecord(key, &po)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, key, notFoundf("purchase order for buyer %q and drug %q does not exist", buyerCRN, drugName)
	}
	return &po, key, nil
}

func (w *Workflow) getShipment(buyerCRN, drugName string) (*model.Shipment, string, error) {
	key, err := ledger.CompositeKey(ledger.ShipmentNamespace, buyerCRN, drugName)
	if err != nil {
		return nil, "", invalidf("invalid shipment reference %q/%q", buyerCRN, drugName)
	}
	var shipment model.Shipment
	found, err := w.getRecord(key, &shipment)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, key, notFoundf("shipment for buyer %q and drug %q does not exist", buyerCRN, drugName)
	}
	return &shipment, key, nil
}

// --- General helpers ---

func (w *Workflow) now() (time.Time, error) {
	return w.clock.Now()
}

func validateRequiredString(input, field string) error {
	if strings.TrimSpace(input) == "" {
		return invalidf("%s cannot be empty", field)
	}
	if len(input) > maxStringInputLength {
		return invalidf("%s exceeds max length %d", field, maxStringInputLength)
	}
	return nil
}

// emitEvent publishes a chaincode event. Emission failures are logged, not
// surfaced: events serve verification paths, never the state machine.
func (w *Workflow) emitEvent(name string, payload map[string]interface{}) {
	if w.events == nil {
		return
	}
	for k, v := range payload {
		if t, ok := v.(time.Time); ok {
			payload[k] = t.Format(time.RFC3339)
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitEvent: failed to marshal payload for event %q: %v", name, err)
		return
	}
	if err := w.events.Emit(name, data); err != nil {
		logger.Warningf("emitEvent: failed to set event %q: %v", name, err)
	}
}
