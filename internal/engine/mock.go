// internal/engine/mock.go
package engine

import (
	"sync"
	"time"

	"github.com/llehouerou/vdplayer/internal/playback"
	"github.com/llehouerou/vdplayer/internal/relay"
)

// MockName is the top-level element name reported by Mock.
const MockName = "mock-pipeline"

// Mock is a test double for Engine.
//
// Without a poster it only records calls. With a poster it reports
// transitions the way a real pipeline does, one step at a time.
type Mock struct {
	mu         sync.Mutex
	poster     relay.Poster
	state      playback.State
	position   time.Duration
	positionOK bool
	duration   time.Duration
	durationOK bool
	streams    playback.StreamInfo
	fullscreen bool
	stateErr   error
	seekErr    error
	stateCalls []playback.State
	seekCalls  []playback.SeekRequest
	posQueries int
	durQueries int
	closed     bool
}

// NewMock creates a mock engine in the Null state.
func NewMock(poster relay.Poster) *Mock {
	return &Mock{poster: poster, state: playback.StateNull}
}

func (m *Mock) Name() string { return MockName }

func (m *Mock) SetState(target playback.State) error {
	m.mu.Lock()
	m.stateCalls = append(m.stateCalls, target)
	if m.stateErr != nil {
		err := m.stateErr
		m.mu.Unlock()
		return err
	}
	steps := playback.Steps(m.state, target)
	m.state = target
	poster := m.poster
	m.mu.Unlock()

	if poster != nil {
		for _, s := range steps {
			poster.Post(relay.StateChanged{
				Source:  MockName,
				Old:     s.Old,
				New:     s.New,
				Pending: playback.StateVoidPending,
			})
		}
	}
	return nil
}

func (m *Mock) Seek(req playback.SeekRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, req)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = req.Target
	return nil
}

func (m *Mock) QueryPosition() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posQueries++
	if !m.positionOK {
		return 0, ErrUnavailable
	}
	return m.position, nil
}

func (m *Mock) QueryDuration() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durQueries++
	if !m.durationOK {
		return 0, ErrUnavailable
	}
	return m.duration, nil
}

func (m *Mock) Streams() playback.StreamInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streams
}

func (m *Mock) SetFullscreen(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fullscreen = on
	return nil
}

func (m *Mock) Fullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullscreen
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetPosition makes position queries succeed with d.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position, m.positionOK = d, true
}

// FailPosition makes position queries fail.
func (m *Mock) FailPosition() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positionOK = false
}

// SetDuration makes duration queries succeed with d.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration, m.durationOK = d, true
}

// SetStreams sets what Streams returns.
func (m *Mock) SetStreams(info playback.StreamInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = info
}

// SetStateError makes SetState fail with err.
func (m *Mock) SetStateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateErr = err
}

// SetSeekError makes Seek fail with err.
func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

// ForceState sets the current state without posting anything.
func (m *Mock) ForceState(s playback.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) State() playback.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) StateCalls() []playback.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]playback.State(nil), m.stateCalls...)
}

func (m *Mock) SeekCalls() []playback.SeekRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]playback.SeekRequest(nil), m.seekCalls...)
}

// Queries returns how many position and duration queries were made.
func (m *Mock) Queries() (position, duration int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posQueries, m.durQueries
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
