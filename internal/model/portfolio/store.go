package portfolio

import "sync"

// Store exposes portfolio data to the development backend handlers.
type Store interface {
	Clients() []Client
	FindClient(id string) (Client, bool)
	Holdings() []Holding
	Reset(clients []Client, holdings []Holding)
}

// MemoryStore implements Store with in-memory slices.
type MemoryStore struct {
	mu       sync.RWMutex
	clients  []Client
	holdings []Holding
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied records.
func NewMemoryStore(clients []Client, holdings []Holding) *MemoryStore {
	s := &MemoryStore{}
	s.Reset(clients, holdings)
	return s
}

// Clients returns a copy of the client list.
func (s *MemoryStore) Clients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Client(nil), s.clients...)
}

// FindClient looks up a client by identifier.
func (s *MemoryStore) FindClient(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.clients {
		if item.ID == id {
			return item, true
		}
	}
	return Client{}, false
}

// Holdings returns a copy of all stock positions.
func (s *MemoryStore) Holdings() []Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Holding(nil), s.holdings...)
}

// Reset replaces the dataset.
func (s *MemoryStore) Reset(clients []Client, holdings []Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]Client(nil), clients...)
	s.holdings = append([]Holding(nil), holdings...)
}
