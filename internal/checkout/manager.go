package checkout

import "sync"

// Manager holds the in-flight checkout per session. Checkouts are
// short-lived and never survive a restart; the cart itself lives in its own
// storage.
type Manager struct {
	mu        sync.Mutex
	checkouts map[string]*Checkout
}

func NewManager() *Manager {
	return &Manager{checkouts: make(map[string]*Checkout)}
}

func (m *Manager) put(session string, ck *Checkout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts[session] = ck
}

func (m *Manager) get(session string) (*Checkout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ck, ok := m.checkouts[session]
	return ck, ok
}

func (m *Manager) remove(session string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.checkouts, session)
}
