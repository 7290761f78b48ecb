package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rohitroyrr8/pharma/model"
)

// MemStore is a pure in-memory Store with per-key history. It backs tests
// and carries no Fabric dependency. Writes are visible to subsequent reads
// immediately (read-your-own-writes) and history is kept in commit order,
// oldest first.
type MemStore struct {
	mu      sync.RWMutex
	state   map[string][]byte
	history map[string][]model.HistoryEntry
	events  []Event
	txSeq   int
	clock   *FakeClock
}

// Event is a recorded emission, kept so tests can assert on event traffic.
type Event struct {
	Name    string
	Payload []byte
}

// NewMemStore returns an empty store stamping history entries with clock.
func NewMemStore(clock *FakeClock) *MemStore {
	return &MemStore{
		state:   make(map[string][]byte),
		history: make(map[string][]model.HistoryEntry),
		clock:   clock,
	}
}

func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.state[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (m *MemStore) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.state[key] = cp

	m.txSeq++
	now, _ := m.clock.Now()
	m.history[key] = append(m.history[key], model.HistoryEntry{
		TxID:      fmt.Sprintf("memtx-%04d", m.txSeq),
		Timestamp: now,
		Value:     string(cp),
	})
	return nil
}

func (m *MemStore) History(key string) ([]model.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]model.HistoryEntry, len(m.history[key]))
	copy(entries, m.history[key])
	return entries, nil
}

func (m *MemStore) Range(namespace string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	prefix := namespacePrefix(namespace)
	keys := make([]string, 0, len(m.state))
	for k := range m.state {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	m.mu.RUnlock()

	for _, k := range keys {
		value, err := m.Get(k)
		if err != nil {
			return err
		}
		if err := fn(k, value); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemStore) Emit(name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, Event{Name: name, Payload: payload})
	return nil
}

// Events returns every event emitted so far, in emission order.
func (m *MemStore) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// FakeClock is a deterministic Clock for tests.
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a clock pinned to t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() (time.Time, error) {
	return c.now, nil
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
