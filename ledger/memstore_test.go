package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeKeyDeterministic(t *testing.T) {
	k1, err := CompositeKey(DrugNamespace, "Paracetamol", "SN100")
	require.NoError(t, err)
	k2, err := CompositeKey(DrugNamespace, "Paracetamol", "SN100")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestCompositeKeyNoCollisions(t *testing.T) {
	// Different attribute tuples must never produce the same key within a
	// namespace, even when naive concatenation would collide.
	k1, err := CompositeKey(DrugNamespace, "Para", "cetamolSN100")
	require.NoError(t, err)
	k2, err := CompositeKey(DrugNamespace, "Paracetamol", "SN100")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	// Same tuple in different namespaces must not collide either.
	k3, err := CompositeKey(PurchaseOrderNamespace, "DIST001", "Paracetamol")
	require.NoError(t, err)
	k4, err := CompositeKey(ShipmentNamespace, "DIST001", "Paracetamol")
	require.NoError(t, err)
	assert.NotEqual(t, k3, k4)
}

func TestCompositeKeyRejectsInvalidComponents(t *testing.T) {
	_, err := CompositeKey(DrugNamespace, "")
	assert.Error(t, err)

	_, err = CompositeKey(DrugNamespace, "Para\x00cetamol")
	assert.Error(t, err)

	_, err = CompositeKey("", "SN100")
	assert.Error(t, err)
}

func TestMemStoreReadYourOwnWrites(t *testing.T) {
	store := NewMemStore(NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	value, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, store.Put("k", []byte("v1")))
	value, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)
}

func TestMemStoreHistoryCommitOrder(t *testing.T) {
	clock := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := NewMemStore(clock)

	writes := []string{"v1", "v2", "v3"}
	for _, v := range writes {
		require.NoError(t, store.Put("k", []byte(v)))
		clock.Advance(time.Minute)
	}

	entries, err := store.History("k")
	require.NoError(t, err)
	require.Len(t, entries, len(writes))
	for i, v := range writes {
		assert.Equal(t, v, entries[i].Value)
		assert.False(t, entries[i].IsDelete)
	}

	// The latest history entry matches the current state.
	current, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, string(current), entries[len(entries)-1].Value)

	// History timestamps are monotonically non-decreasing and tx ids unique.
	seen := map[string]bool{}
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.Before(entries[i-1].Timestamp))
	}
	for _, e := range entries {
		assert.False(t, seen[e.TxID], "duplicate tx id %s", e.TxID)
		seen[e.TxID] = true
	}
}

func TestMemStoreRangeScansOneNamespace(t *testing.T) {
	store := NewMemStore(NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	companyKey, err := CompositeKey(CompanyNamespace, "SUN001")
	require.NoError(t, err)
	drugKey, err := CompositeKey(DrugNamespace, "Paracetamol", "SN100")
	require.NoError(t, err)
	require.NoError(t, store.Put(companyKey, []byte("company")))
	require.NoError(t, store.Put(drugKey, []byte("drug")))

	var got []string
	err = store.Range(CompanyNamespace, func(key string, value []byte) error {
		got = append(got, string(value))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"company"}, got)
}

func TestMemStoreRecordsEvents(t *testing.T) {
	store := NewMemStore(NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, store.Emit("DrugAdded", []byte(`{"drugName":"Paracetamol"}`)))

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "DrugAdded", events[0].Name)
}
