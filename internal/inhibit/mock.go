package inhibit

import (
	"context"
	"sync"
)

// Mock is a test double for Inhibitor. It is safe for concurrent use.
type Mock struct {
	mu           sync.Mutex
	nextCookie   uint32
	inhibitErr   error
	uninhibitErr error
	gate         chan struct{}
	inhibits     int
	released     []uint32
	closed       bool
}

// NewMock creates a mock that hands out cookies starting at first.
func NewMock(first uint32) *Mock {
	return &Mock{nextCookie: first}
}

func (m *Mock) Inhibit(ctx context.Context, _, _ string) (uint32, error) {
	m.mu.Lock()
	m.inhibits++
	m.mu.Unlock()
	if err := m.wait(ctx); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inhibitErr != nil {
		return 0, m.inhibitErr
	}
	c := m.nextCookie
	m.nextCookie++
	return c, nil
}

func (m *Mock) Uninhibit(ctx context.Context, cookie uint32) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uninhibitErr != nil {
		return m.uninhibitErr
	}
	m.released = append(m.released, cookie)
	return nil
}

// wait blocks while a gate is set, like a service that does not answer.
func (m *Mock) wait(ctx context.Context) error {
	m.mu.Lock()
	gate := m.gate
	m.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// Hold makes calls block until Open is called or their context ends.
func (m *Mock) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = make(chan struct{})
}

// Open releases calls blocked by Hold.
func (m *Mock) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

func (m *Mock) SetInhibitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inhibitErr = err
}

func (m *Mock) SetUninhibitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uninhibitErr = err
}

// Inhibits returns how many Inhibit calls were made.
func (m *Mock) Inhibits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inhibits
}

// Released returns the cookies passed to successful Uninhibit calls.
func (m *Mock) Released() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint32(nil), m.released...)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Inhibitor at compile time.
var _ Inhibitor = (*Mock)(nil)
