package notify

import "sync"

// Mock records notifications. Ids start at 1; a notification that
// replaces another keeps its id.
type Mock struct {
	mu        sync.Mutex
	sent      []Notification
	withdrawn []uint32
	lastID    uint32
	err       error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.sent = append(m.sent, n)
	if n.Replaces != 0 {
		return n.Replaces, nil
	}
	m.lastID++
	return m.lastID, nil
}

func (m *Mock) Withdraw(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.withdrawn = append(m.withdrawn, id)
	return nil
}

// SetError makes Notify fail with err until cleared with nil.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.sent...)
}

func (m *Mock) Withdrawn() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint32(nil), m.withdrawn...)
}
