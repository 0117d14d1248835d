// internal/state/mock.go
package state

import "time"

// Mock is a test double for Manager. Saves apply immediately.
type Mock struct {
	positions map[string]time.Duration
	saves     int
	forgotten []string
	closed    bool
}

// NewMock creates a new mock resume store for testing.
func NewMock() *Mock {
	return &Mock{positions: make(map[string]time.Duration)}
}

func (m *Mock) Position(locator string) (time.Duration, bool) {
	p, ok := m.positions[locator]
	return p, ok
}

func (m *Mock) SavePosition(locator string, pos, dur time.Duration) {
	m.saves++
	if !worthResuming(pos, dur) {
		m.Forget(locator)
		return
	}
	m.positions[locator] = pos
}

func (m *Mock) Forget(locator string) {
	delete(m.positions, locator)
	m.forgotten = append(m.forgotten, locator)
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPosition(locator string, pos time.Duration) { m.positions[locator] = pos }

func (m *Mock) Saves() int { return m.saves }

func (m *Mock) Forgotten() []string { return m.forgotten }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
