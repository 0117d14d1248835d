package inhibit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vdplayer/internal/relay"
)

func quietLog() *logrus.Entry {
	log, _ := test.NewNullLogger()
	return logrus.NewEntry(log)
}

func syncManager(inh Inhibitor) *Manager {
	return NewManager(inh, relay.NewQueue(), Options{
		AppName: "vdplayer",
		Reason:  "testing",
		Timeout: time.Second,
	}, quietLog())
}

func asyncManager(inh Inhibitor, timeout time.Duration) (*Manager, *relay.Queue) {
	q := relay.NewQueue()
	return NewManager(inh, q, Options{
		AppName: "vdplayer",
		Reason:  "testing",
		Timeout: timeout,
		Async:   true,
	}, quietLog()), q
}

// deliver feeds the next lease completion from q back into m.
func deliver(t *testing.T, m *Manager, q *relay.Queue) relay.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := q.Next(ctx)
	require.NoError(t, err, "no lease completion posted")
	switch e := ev.(type) {
	case relay.LeaseAcquired:
		m.HandleAcquired(e)
	case relay.LeaseReleased:
		m.HandleReleased(e)
	default:
		t.Fatalf("unexpected event %T", ev)
	}
	return ev
}

func TestManager_SyncAcquireRelease(t *testing.T) {
	inh := NewMock(7)
	m := syncManager(inh)

	m.Want(true)
	assert.Equal(t, Lease{Active: true, Cookie: mo.Some[uint32](7)}, m.Lease())

	m.Want(true)
	assert.Equal(t, 1, inh.Inhibits(), "already held")

	m.Want(false)
	assert.Equal(t, Lease{}, m.Lease())
	assert.Equal(t, []uint32{7}, inh.Released())
}

func TestManager_AsyncAcquire(t *testing.T) {
	inh := NewMock(42)
	m, q := asyncManager(inh, time.Second)

	m.Want(true)
	assert.True(t, m.Busy())
	assert.False(t, m.Lease().Active, "not held until the reply is handled")

	ev := deliver(t, m, q)
	assert.Equal(t, uint64(1), ev.(relay.LeaseAcquired).Job)
	assert.False(t, m.Busy())
	assert.Equal(t, Lease{Active: true, Cookie: mo.Some[uint32](42)}, m.Lease())
}

func TestManager_AtMostOneInFlight(t *testing.T) {
	inh := NewMock(1)
	inh.Hold()
	m, q := asyncManager(inh, time.Second)

	m.Want(true)
	m.Want(false)
	m.Want(true)
	m.Want(false)

	inh.Open()
	deliver(t, m, q)
	assert.Equal(t, 1, inh.Inhibits())

	// the pause that arrived while acquiring is honoured afterwards
	assert.True(t, m.Busy())
	deliver(t, m, q)
	assert.Equal(t, Lease{}, m.Lease())
	assert.Equal(t, []uint32{1}, inh.Released())
}

func TestManager_AcquireTimeout(t *testing.T) {
	inh := NewMock(1)
	inh.Hold()
	m, q := asyncManager(inh, 20*time.Millisecond)

	m.Want(true)
	ev := deliver(t, m, q)
	assert.ErrorIs(t, ev.(relay.LeaseAcquired).Err, context.DeadlineExceeded)

	assert.Equal(t, Lease{}, m.Lease())
	assert.True(t, m.Lease().Cookie.IsAbsent())
	assert.False(t, m.Busy(), "no automatic retry")
	assert.Equal(t, 0, q.Len())

	// the next Playing edge tries again
	inh.Open()
	m.Want(true)
	deliver(t, m, q)
	assert.True(t, m.Lease().Active)
	assert.Equal(t, 2, inh.Inhibits())
}

func TestManager_AcquireFailureKeepsPlaybackUnaffected(t *testing.T) {
	inh := NewMock(1)
	inh.SetInhibitError(errors.New("org.gnome.SessionManager not running"))
	m := syncManager(inh)

	m.Want(true)
	assert.Equal(t, Lease{}, m.Lease())
	assert.Equal(t, 1, inh.Inhibits())

	m.Want(false)
	assert.Empty(t, inh.Released(), "nothing to release")
}

func TestManager_ReleaseFailureKeepsLease(t *testing.T) {
	inh := NewMock(9)
	m := syncManager(inh)
	m.Want(true)

	inh.SetUninhibitError(errors.New("timeout"))
	m.Want(false)
	assert.Equal(t, Lease{Active: true, Cookie: mo.Some[uint32](9)}, m.Lease())
	assert.False(t, m.Busy(), "no retry loop")

	inh.SetUninhibitError(nil)
	m.Want(false)
	assert.Equal(t, Lease{}, m.Lease())
	assert.Equal(t, []uint32{9}, inh.Released())
}

func TestManager_StaleCompletionIgnored(t *testing.T) {
	inh := NewMock(5)
	m, q := asyncManager(inh, time.Second)

	m.HandleAcquired(relay.LeaseAcquired{Job: 99, Cookie: 1234})
	assert.Equal(t, Lease{}, m.Lease())

	m.Want(true)
	m.HandleReleased(relay.LeaseReleased{Job: 1})
	assert.True(t, m.Busy(), "kind mismatch is stale")

	deliver(t, m, q)
	assert.Equal(t, mo.Some[uint32](5), m.Lease().Cookie)
}

func TestManager_ShutdownWaitsThenReleases(t *testing.T) {
	inh := NewMock(3)
	inh.Hold()
	m, q := asyncManager(inh, 0)

	m.Want(true)
	go func() {
		time.Sleep(20 * time.Millisecond)
		inh.Open()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(ctx))
	assert.Equal(t, Lease{}, m.Lease())
	assert.Equal(t, []uint32{3}, inh.Released())

	// the worker's own completion arrives late and changes nothing
	deliver(t, m, q)
	assert.Equal(t, Lease{}, m.Lease())
	assert.False(t, m.Busy())
}

func TestManager_ShutdownBounded(t *testing.T) {
	inh := NewMock(3)
	m := syncManager(inh)
	m.Want(true)

	inh.Hold()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, inh.Released())
}

func TestManager_ShutdownNothingHeld(t *testing.T) {
	inh := NewMock(1)
	m := syncManager(inh)
	require.NoError(t, m.Shutdown(context.Background()))
	assert.Equal(t, 0, inh.Inhibits())

	m.Want(true)
	assert.Equal(t, 0, inh.Inhibits(), "no requests after shutdown")
}

func TestManager_NilInhibitor(t *testing.T) {
	m := NewManager(nil, relay.NewQueue(), Options{Async: true}, nil)
	m.Want(true)
	assert.False(t, m.Busy())
	assert.Equal(t, Lease{}, m.Lease())
	require.NoError(t, m.Shutdown(context.Background()))
}
