package model

import "time"

// OrganisationRole classifies a participating company in the supply chain.
type OrganisationRole string

const (
	RoleManufacturer OrganisationRole = "Manufacturer"
	RoleDistributor  OrganisationRole = "Distributor"
	RoleRetailer     OrganisationRole = "Retailer"
	RoleTransporter  OrganisationRole = "Transporter"
)

// HierarchyKeyForRole maps a role to its rank in the supply chain.
// Manufacturer sits closest to the origin; Transporter is outside the
// buy/sell ordering and only carries shipments.
func HierarchyKeyForRole(role OrganisationRole) (int, bool) {
	switch role {
	case RoleManufacturer:
		return 1, true
	case RoleDistributor:
		return 2, true
	case RoleRetailer:
		return 3, true
	case RoleTransporter:
		return 4, true
	default:
		return 0, false
	}
}

// ShipmentStatus defines the possible states of a shipment.
type ShipmentStatus string

const (
	ShipmentInTransit ShipmentStatus = "IN-TRANSIT" // Created against an open purchase order
	ShipmentDelivered ShipmentStatus = "DELIVERED"  // Confirmed by the transporter, custody moved to buyer
)

// POStatus defines the possible states of a purchase order.
type POStatus string

const (
	POOpen      POStatus = "OPEN"
	POFulfilled POStatus = "FULFILLED" // A shipment has been created against this order
)

// Company represents a registered organisation on the network.
// Companies are immutable once written.
type Company struct {
	CompanyID        string           `json:"companyId"` // Composite key of this record
	CRN              string           `json:"crn"`
	CompanyName      string           `json:"companyName"`
	Location         string           `json:"location"`
	OrganisationRole OrganisationRole `json:"organisationRole"`
	HierarchyKey     int              `json:"hierarchyKey"` // Derived from OrganisationRole
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// DrugAsset represents a single serialized drug unit and its custody state.
type DrugAsset struct {
	ProductID    string    `json:"productId"` // Composite key of this record
	DrugName     string    `json:"drugName"`
	SerialNo     string    `json:"serialNo"`
	Manufacturer string    `json:"manufacturer"` // Company key of the manufacturer
	MfgDate      string    `json:"mfgDate"`
	ExpDate      string    `json:"expDate"`
	Owner        string    `json:"owner"`     // Company key, or the consumer id after dispensing
	Retailer     string    `json:"retailer"`  // Company key of the dispensing retailer, set terminally
	Shipments    []string  `json:"shipments"` // Shipment keys this unit travelled in, append-only
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Dispensed reports whether the unit has reached its terminal consumer state.
func (d *DrugAsset) Dispensed() bool {
	return d.Retailer != ""
}

// PurchaseOrder records a buyer/seller agreement for a quantity of one drug.
type PurchaseOrder struct {
	POID      string    `json:"poId"` // Composite key of this record
	DrugName  string    `json:"drugName"`
	Quantity  int       `json:"quantity"`
	Buyer     string    `json:"buyer"`  // Company key
	Seller    string    `json:"seller"` // Company key
	Status    POStatus  `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shipment bundles drug units moving against one purchase order.
type Shipment struct {
	ShipmentID  string         `json:"shipmentId"` // Composite key of this record
	Creator     string         `json:"creator"`    // Caller organisation that created the shipment
	BuyerCRN    string         `json:"buyerCrn"`
	Buyer       string         `json:"buyer"` // Company key
	DrugName    string         `json:"drugName"`
	Assets      []string       `json:"assets"`      // Drug asset keys, one per unit in the order
	Transporter string         `json:"transporter"` // Company key
	Status      ShipmentStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// HistoryEntry represents one historical state of a key as reported by the
// ledger's per-key history.
type HistoryEntry struct {
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
	IsDelete  bool      `json:"isDelete"`
	Value     string    `json:"value"` // Raw JSON value of the record at that time
}
