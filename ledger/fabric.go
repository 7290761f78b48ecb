package ledger

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/hyperledger/fabric/common/flogging"
	"github.com/rohitroyrr8/pharma/model"
)

var logger = flogging.MustGetLogger("pharmanet.ledger")

// FabricLedger adapts a chaincode stub to the Store, EventSink and Clock
// capabilities. One instance serves one transaction.
type FabricLedger struct {
	stub shim.ChaincodeStubInterface
}

// NewFabricLedger wraps the given stub.
func NewFabricLedger(stub shim.ChaincodeStubInterface) *FabricLedger {
	return &FabricLedger{stub: stub}
}

func (f *FabricLedger) Get(key string) ([]byte, error) {
	value, err := f.stub.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read key from ledger: %w", err)
	}
	return value, nil
}

func (f *FabricLedger) Put(key string, value []byte) error {
	if err := f.stub.PutState(key, value); err != nil {
		return fmt.Errorf("failed to write key to ledger: %w", err)
	}
	return nil
}

// History surfaces the peer's per-key history in its native order. Entries
// that fail to iterate are skipped with a warning rather than aborting the
// whole query.
func (f *FabricLedger) History(key string) ([]model.HistoryEntry, error) {
	iter, err := f.stub.GetHistoryForKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get history for key: %w", err)
	}
	defer iter.Close()

	entries := []model.HistoryEntry{}
	for iter.HasNext() {
		mod, iterErr := iter.Next()
		if iterErr != nil {
			logger.Warningf("History: failed to get next modification for key %q: %v. Skipping.", key, iterErr)
			continue
		}
		entries = append(entries, historyEntry(mod))
	}
	return entries, nil
}

func historyEntry(mod *queryresult.KeyModification) model.HistoryEntry {
	return model.HistoryEntry{
		TxID:      mod.TxId,
		Timestamp: mod.Timestamp.AsTime(),
		IsDelete:  mod.IsDelete,
		Value:     string(mod.Value),
	}
}

func (f *FabricLedger) Range(namespace string, fn func(key string, value []byte) error) error {
	iter, err := f.stub.GetStateByPartialCompositeKey(namespace, []string{})
	if err != nil {
		return fmt.Errorf("failed to get iterator for namespace %q: %w", namespace, err)
	}
	defer iter.Close()

	for iter.HasNext() {
		kv, iterErr := iter.Next()
		if iterErr != nil {
			logger.Warningf("Range: failed to get next entry in namespace %q: %v. Skipping.", namespace, iterErr)
			continue
		}
		if err := fn(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

func (f *FabricLedger) Emit(name string, payload []byte) error {
	return f.stub.SetEvent(name, payload)
}

// Now returns the deterministic transaction timestamp assigned by the peer.
func (f *FabricLedger) Now() (time.Time, error) {
	ts, err := f.stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}
