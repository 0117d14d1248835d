package inhibit

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vdplayer/internal/relay"
)

type phase int

const (
	phaseInactive phase = iota
	phaseAcquiring
	phaseActive
	phaseReleasing
)

func (p phase) String() string {
	switch p {
	case phaseInactive:
		return "inactive"
	case phaseAcquiring:
		return "acquiring"
	case phaseActive:
		return "active"
	case phaseReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// Options configure a Manager.
type Options struct {
	AppName string
	Reason  string
	// Timeout bounds each request. Zero waits for the reply forever.
	Timeout time.Duration
	// Async runs requests on a worker goroutine and delivers the result
	// through the relay queue. Otherwise requests run inline.
	Async bool
}

// job is one request to the inhibitor. The worker fills the result fields
// before closing done.
type job struct {
	id      uint64
	acquire bool
	cookie  uint32
	err     error
	done    chan struct{}
}

// Manager owns the idle-inhibition lease.
//
// It is driven from the UI loop: Want records the desired lease state and
// the manager issues at most one request at a time to get there. A failed
// acquire is not retried until Want(true) is called again; a failed release
// keeps the lease and is retried on the next Want(false).
//
// Manager is not safe for concurrent use.
type Manager struct {
	inh    Inhibitor
	poster relay.Poster
	opts   Options
	log    *logrus.Entry

	phase    phase
	want     bool
	cookie   mo.Option[uint32]
	inflight *job
	lastJob  uint64
	closing  bool
}

// NewManager creates a manager. A nil inhibitor gives a manager that never
// requests anything.
func NewManager(inh Inhibitor, poster relay.Poster, opts Options, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{
		inh:    inh,
		poster: poster,
		opts:   opts,
		log:    log,
	}
}

// Lease returns the current lease. A lease being released is still held.
func (m *Manager) Lease() Lease {
	held := m.phase == phaseActive || m.phase == phaseReleasing
	if !held {
		return Lease{}
	}
	return Lease{Active: true, Cookie: m.cookie}
}

// Busy reports whether a request is in flight.
func (m *Manager) Busy() bool {
	return m.inflight != nil
}

// Want records whether the lease should be held and starts a request if
// one is needed and none is in flight.
func (m *Manager) Want(on bool) {
	m.want = on
	m.reconcile()
}

func (m *Manager) reconcile() {
	if m.inh == nil || m.closing || m.inflight != nil {
		return
	}
	switch {
	case m.want && m.phase == phaseInactive:
		m.start(true)
	case !m.want && m.phase == phaseActive:
		m.start(false)
	}
}

func (m *Manager) start(acquire bool) {
	m.lastJob++
	j := &job{id: m.lastJob, acquire: acquire, done: make(chan struct{})}
	if acquire {
		m.phase = phaseAcquiring
	} else {
		j.cookie = m.cookie.OrEmpty()
		m.phase = phaseReleasing
	}
	m.inflight = j
	m.log.WithFields(logrus.Fields{"job": j.id, "phase": m.phase}).Debug("lease request")

	if !m.opts.Async {
		m.run(context.Background(), j)
		m.settle(j)
		return
	}
	go func() {
		m.run(context.Background(), j)
		if j.acquire {
			m.poster.Post(relay.LeaseAcquired{Job: j.id, Cookie: j.cookie, Err: j.err})
		} else {
			m.poster.Post(relay.LeaseReleased{Job: j.id, Cookie: j.cookie, Err: j.err})
		}
	}()
}

// run performs the request bounded by the configured timeout. It only
// touches j, so it may run on any goroutine.
func (m *Manager) run(ctx context.Context, j *job) {
	defer close(j.done)
	if m.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.Timeout)
		defer cancel()
	}
	if j.acquire {
		j.cookie, j.err = m.inh.Inhibit(ctx, m.opts.AppName, m.opts.Reason)
	} else {
		j.err = m.inh.Uninhibit(ctx, j.cookie)
	}
}

// HandleAcquired applies an acquire completion posted by the worker.
func (m *Manager) HandleAcquired(ev relay.LeaseAcquired) {
	if !m.current(ev.Job, true) {
		return
	}
	j := m.inflight
	j.cookie, j.err = ev.Cookie, ev.Err
	m.settle(j)
}

// HandleReleased applies a release completion posted by the worker.
func (m *Manager) HandleReleased(ev relay.LeaseReleased) {
	if !m.current(ev.Job, false) {
		return
	}
	j := m.inflight
	j.err = ev.Err
	m.settle(j)
}

func (m *Manager) current(id uint64, acquire bool) bool {
	if m.inflight == nil || m.inflight.id != id || m.inflight.acquire != acquire {
		m.log.WithField("job", id).Debug("stale lease completion ignored")
		return false
	}
	return true
}

// settle records the outcome of j and moves on to whatever is wanted now.
func (m *Manager) settle(j *job) {
	m.inflight = nil
	log := m.log.WithField("job", j.id)

	switch {
	case j.acquire && j.err == nil:
		m.phase = phaseActive
		m.cookie = mo.Some(j.cookie)
		log.WithField("cookie", j.cookie).Info("idle inhibited")
	case j.acquire:
		m.phase = phaseInactive
		m.cookie = mo.None[uint32]()
		m.want = false
		log.WithError(j.err).Warn("cannot inhibit idle, continuing without")
	case j.err == nil:
		m.phase = phaseInactive
		m.cookie = mo.None[uint32]()
		log.WithField("cookie", j.cookie).Info("idle inhibition released")
	default:
		m.phase = phaseActive
		m.want = true
		log.WithError(j.err).WithField("cookie", j.cookie).Warn("cannot release idle inhibition, keeping lease")
	}

	m.reconcile()
}

// Shutdown drops the lease before exit. It waits for an in-flight request,
// then releases an active lease inline, all within ctx. Completions that
// arrive later through the relay queue are ignored.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.want = false
	m.closing = true

	if j := m.inflight; j != nil {
		select {
		case <-j.done:
			m.settle(j)
		case <-ctx.Done():
			m.log.WithError(ctx.Err()).Warn("lease request still pending at shutdown")
			return ctx.Err()
		}
	}

	if m.phase != phaseActive || m.inh == nil {
		return nil
	}
	m.lastJob++
	j := &job{id: m.lastJob, cookie: m.cookie.OrEmpty(), done: make(chan struct{})}
	m.phase = phaseReleasing
	m.inflight = j
	m.run(ctx, j)
	m.settle(j)
	if j.err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return j.err
	}
	return nil
}
