// Package state persists resume positions in a SQLite database.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/vdplayer/internal/db"
)

const (
	appName      = "vdplayer"
	dbFileName   = "vdplayer.db"
	saveDebounce = 500 * time.Millisecond
	// maxEntries bounds how many locators are remembered.
	maxEntries = 500
)

// Manager is the resume store. Saves are batched; failures are logged and
// otherwise ignored.
type Manager struct {
	db  *sql.DB
	log *logrus.Entry

	// writeMu orders database writes, so a Forget is never overtaken by a
	// flush of an older save. Taken before saveMu.
	writeMu   sync.Mutex
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]resumeEntry
	now       func() time.Time

	beforeWrite func() // test hook, runs between taking pending and writing it
}

// Open opens the database under the XDG data directory.
func Open(log *logrus.Entry) (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, log)
}

// OpenPath opens or creates the database at dbPath. ":memory:" gives a
// throwaway database.
func OpenPath(dbPath string, log *logrus.Entry) (*Manager, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// one connection, so ":memory:" is the same database everywhere
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Manager{
		db:      conn,
		log:     log,
		pending: make(map[string]resumeEntry),
		now:     time.Now,
	}, nil
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	m.flush()
	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SavePosition records where playback of locator is. Writes are debounced;
// positions too close to either end of the media are forgotten instead.
func (m *Manager) SavePosition(locator string, pos, dur time.Duration) {
	if !worthResuming(pos, dur) {
		m.Forget(locator)
		return
	}

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[locator] = resumeEntry{Position: pos, Duration: dur, UpdatedAt: m.now()}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, m.flush)
}

func (m *Manager) flush() {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string]resumeEntry)
	m.saveMu.Unlock()

	if len(pending) == 0 {
		return
	}
	if m.beforeWrite != nil {
		m.beforeWrite()
	}
	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		for locator, e := range pending {
			if err := saveResume(tx, locator, e); err != nil {
				return err
			}
		}
		return pruneResume(tx, maxEntries)
	})
	if err != nil {
		m.log.WithError(err).WithField("entries", len(pending)).Warn("cannot save resume positions")
	}
}

// Position returns the saved position for locator, if any. A save still
// waiting for the debounce is returned too.
func (m *Manager) Position(locator string) (time.Duration, bool) {
	m.saveMu.Lock()
	e, ok := m.pending[locator]
	m.saveMu.Unlock()
	if ok {
		return e.Position, true
	}

	e, ok, err := getResume(m.db, locator)
	if err != nil || !ok {
		return 0, false
	}
	return e.Position, true
}

// Forget drops the saved position for locator.
func (m *Manager) Forget(locator string) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	delete(m.pending, locator)
	m.saveMu.Unlock()

	if err := deleteResume(m.db, locator); err != nil {
		m.log.WithError(err).WithField("locator", locator).Warn("cannot forget resume position")
	}
}
