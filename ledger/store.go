// Package ledger abstracts the versioned key/value store the contract logic
// runs against. State reaches the ledger only through the Store interface, so
// the workflow layer never touches a Fabric stub directly and tests can run
// on a pure in-memory store.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohitroyrr8/pharma/model"
)

// Namespaces for composite keys. One namespace per entity type so attribute
// tuples can coincide across types without colliding.
const (
	CompanyNamespace       = "org.pharma-network.pharmanet.company"
	DrugNamespace          = "org.pharma-network.pharmanet.drug"
	PurchaseOrderNamespace = "org.pharma-network.pharmanet.purchase-order"
	ShipmentNamespace      = "org.pharma-network.pharmanet.shipment"
)

// compositeKeySep is the attribute separator used by Fabric composite keys.
// Attributes may not contain it, which is what makes key construction
// collision-free within a namespace.
const compositeKeySep = "\x00"

// CompositeKey builds a ledger key from a namespace and an ordered attribute
// tuple. The construction is pure and matches the format the Fabric stub
// produces, so keys written through the Fabric adapter land where peer-side
// range and history queries expect them.
func CompositeKey(namespace string, attrs ...string) (string, error) {
	if err := validateKeyComponent(namespace, "namespace"); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(compositeKeySep)
	b.WriteString(namespace)
	b.WriteString(compositeKeySep)
	for _, attr := range attrs {
		if err := validateKeyComponent(attr, "attribute"); err != nil {
			return "", err
		}
		b.WriteString(attr)
		b.WriteString(compositeKeySep)
	}
	return b.String(), nil
}

func validateKeyComponent(s, what string) error {
	if s == "" {
		return fmt.Errorf("composite key %s cannot be empty", what)
	}
	if strings.Contains(s, compositeKeySep) {
		return fmt.Errorf("composite key %s %q contains an illegal U+0000 rune", what, s)
	}
	return nil
}

// namespacePrefix returns the key prefix shared by every key in a namespace.
func namespacePrefix(namespace string) string {
	return compositeKeySep + namespace + compositeKeySep
}

// Store is the versioned key/value capability the contract logic consumes.
// Get returns (nil, nil) when the key has never been written; callers decide
// whether that is an error. Within one transaction a value written by Put is
// visible to subsequent Gets of the same transaction; cross-transaction
// visibility and commit ordering belong to the surrounding ledger.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// History returns every value ever committed under key, in the ledger's
	// history order. The sequence is append-only and never truncated.
	History(key string) ([]model.HistoryEntry, error)
	// Range calls fn for each committed key/value in the namespace. Iteration
	// stops on the first error fn returns.
	Range(namespace string, fn func(key string, value []byte) error) error
}

// EventSink publishes a named event with a JSON payload. Emission is
// best-effort on verification paths; a nil sink is valid and drops events.
type EventSink interface {
	Emit(name string, payload []byte) error
}

// Clock supplies the transaction timestamp. On Fabric this is the
// deterministic tx timestamp, never the wall clock; tests inject a fake.
type Clock interface {
	Now() (time.Time, error)
}
