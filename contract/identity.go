package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/rohitroyrr8/pharma/model"
)

// IdentityResolver maps the current caller to its organisation identifier.
// Every authorization check goes through it.
type IdentityResolver interface {
	CallerOrganization() (string, error)
}

// AuthConfig binds each supply-chain role to the organisation identifier its
// members present. It is injected into the workflow instead of living in
// process-wide state, so tests and alternate networks can supply their own
// mapping.
type AuthConfig struct {
	ManufacturerOrg string
	DistributorOrg  string
	RetailerOrg     string
	TransporterOrg  string
}

// DefaultAuthConfig returns the organisation identifiers of the pharma
// network this contract was written for.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		ManufacturerOrg: "manufacturer.pharma-network.com",
		DistributorOrg:  "distributor.pharma-network.com",
		RetailerOrg:     "retailer.pharma-network.com",
		TransporterOrg:  "transporter.pharma-network.com",
	}
}

// OrgForRole returns the configured organisation identifier for a role.
func (c AuthConfig) OrgForRole(role model.OrganisationRole) (string, bool) {
	switch role {
	case model.RoleManufacturer:
		return c.ManufacturerOrg, true
	case model.RoleDistributor:
		return c.DistributorOrg, true
	case model.RoleRetailer:
		return c.RetailerOrg, true
	case model.RoleTransporter:
		return c.TransporterOrg, true
	default:
		return "", false
	}
}

// FabricIdentityResolver resolves the caller through the client identity
// attached to the transaction context.
type FabricIdentityResolver struct {
	id cid.ClientIdentity
}

// NewFabricIdentityResolver wraps the given client identity.
func NewFabricIdentityResolver(id cid.ClientIdentity) *FabricIdentityResolver {
	return &FabricIdentityResolver{id: id}
}

func (r *FabricIdentityResolver) CallerOrganization() (string, error) {
	mspID, err := r.id.GetMSPID()
	if err != nil {
		return "", fmt.Errorf("failed to get caller's MSPID: %w", err)
	}
	return mspID, nil
}

// StaticIdentity is an IdentityResolver pinned to one organisation, used by
// tests and local tooling.
type StaticIdentity string

func (s StaticIdentity) CallerOrganization() (string, error) {
	return string(s), nil
}
