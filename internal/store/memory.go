package store

import (
	"context"
	"strings"
	"sync"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/discbot/internal/nano"
)

// MemoryStore keeps the reference data in process. Searches return discs in
// insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	discs *orderedmap.OrderedMap[int, nano.DiscRecord]
	nanos map[int]nano.NanoDetails
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		discs: orderedmap.NewOrderedMap[int, nano.DiscRecord](),
		nanos: make(map[int]nano.NanoDetails),
	}
}

// AddDisc inserts or replaces a disc. Replacing keeps the original position.
func (m *MemoryStore) AddDisc(disc nano.DiscRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discs.Set(disc.DiscID, disc)
}

// AddNano registers the details of a crystal.
func (m *MemoryStore) AddNano(crystalID int, details nano.NanoDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nanos[crystalID] = details
}

// FindByID implements nano.Store.
func (m *MemoryStore) FindByID(_ context.Context, discID int) (*nano.DiscRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	disc, ok := m.discs.Get(discID)
	if !ok {
		return nil, nil
	}
	return &disc, nil
}

// FindByName implements nano.Store.
func (m *MemoryStore) FindByName(_ context.Context, term string) ([]nano.DiscRecord, error) {
	tokens := nano.SearchTokens(strings.ToLower(term))
	if len(tokens) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var discs []nano.DiscRecord
	for el := m.discs.Front(); el != nil; el = el.Next() {
		if containsAll(strings.ToLower(el.Value.DiscName), tokens) {
			discs = append(discs, el.Value)
		}
	}
	return discs, nil
}

// FindNanoDetails implements nano.Store.
func (m *MemoryStore) FindNanoDetails(_ context.Context, crystalID int) (*nano.NanoDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	details, ok := m.nanos[crystalID]
	if !ok {
		return nil, nil
	}
	return &details, nil
}

// Len returns the number of discs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.discs.Len()
}

func containsAll(name string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(name, token) {
			return false
		}
	}
	return true
}

var (
	_ nano.Store = (*SQLStore)(nil)
	_ nano.Store = (*MemoryStore)(nil)
)
