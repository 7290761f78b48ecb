package contract

import (
	"encoding/json"

	"github.com/rohitroyrr8/pharma/ledger"
	"github.com/rohitroyrr8/pharma/model"
)

// --- Organization Registry ---

// RegisterCompany writes a new Company keyed by its CRN. The hierarchy key is
// derived from the organisation role; an unrecognised role is rejected and a
// CRN that is already registered is not overwritten.
func (w *Workflow) RegisterCompany(crn, companyName, location, organisationRole string) (*model.Company, error) {
	if err := validateRequiredString(crn, "companyCRN"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(companyName, "companyName"); err != nil {
		return nil, err
	}
	if err := validateRequiredString(location, "location"); err != nil {
		return nil, err
	}

	role := model.OrganisationRole(organisationRole)
	hierarchyKey, ok := model.HierarchyKeyForRole(role)
	if !ok {
		return nil, invalidf("invalid organisation role %q", organisationRole)
	}

	companyKey, err := ledger.CompositeKey(ledger.CompanyNamespace, crn)
	if err != nil {
		return nil, invalidf("invalid company CRN %q", crn)
	}
	existing, err := w.store.Get(companyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("company with CRN %q is already registered", crn)
	}

	now, err := w.now()
	if err != nil {
		return nil, err
	}

	company := model.Company{
		CompanyID:        companyKey,
		CRN:              crn,
		CompanyName:      companyName,
		Location:         location,
		OrganisationRole: role,
		HierarchyKey:     hierarchyKey,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := w.putRecord(companyKey, &company); err != nil {
		return nil, err
	}

	w.emitEvent("CompanyRegistered", map[string]interface{}{
		"crn": crn, "companyName": companyName, "organisationRole": role, "hierarchyKey": hierarchyKey,
	})
	logger.Infof("Company %q (%s) registered with hierarchy key %d", companyName, crn, hierarchyKey)
	return &company, nil
}

// ViewCompany fetches one registered company by CRN.
func (w *Workflow) ViewCompany(crn string) (*model.Company, error) {
	logger.Debugf("ViewCompany: querying company %q", crn)
	if err := validateRequiredString(crn, "companyCRN"); err != nil {
		return nil, err
	}
	company, _, err := w.getCompanyByCRN(crn)
	return company, err
}

// GetAllCompanies scans the company namespace. Records that fail to decode
// are skipped rather than failing the whole query.
func (w *Workflow) GetAllCompanies() ([]model.Company, error) {
	logger.Debug("GetAllCompanies: scanning company namespace")
	companies := []model.Company{}
	err := w.store.Range(ledger.CompanyNamespace, func(key string, value []byte) error {
		var company model.Company
		if err := json.Unmarshal(value, &company); err != nil {
			logger.Warningf("GetAllCompanies: failed to decode company at key %q: %v. Skipping.", key, err)
			return nil
		}
		companies = append(companies, company)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}
