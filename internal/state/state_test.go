package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testLocator = "/videos/big_buck_bunny.mp4"

func quietLog() *logrus.Entry {
	log, _ := test.NewNullLogger()
	return logrus.NewEntry(log)
}

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

func TestGetResume_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, ok, err := getResume(db, testLocator)
	if err != nil {
		t.Fatalf("getResume failed: %v", err)
	}
	if ok {
		t.Error("expected no entry on empty db")
	}
}

func TestSaveAndGetResume(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	entry := resumeEntry{
		Position:  95 * time.Second,
		Duration:  10 * time.Minute,
		UpdatedAt: time.Unix(1700000000, 0),
	}
	if err := saveResume(db, testLocator, entry); err != nil {
		t.Fatalf("saveResume failed: %v", err)
	}

	// overwrite
	entry.Position = 120 * time.Second
	if err := saveResume(db, testLocator, entry); err != nil {
		t.Fatalf("saveResume (update) failed: %v", err)
	}

	got, ok, err := getResume(db, testLocator)
	if err != nil || !ok {
		t.Fatalf("getResume = %v, %v", ok, err)
	}
	if got != entry {
		t.Errorf("getResume = %+v, want %+v", got, entry)
	}

	if err := deleteResume(db, testLocator); err != nil {
		t.Fatalf("deleteResume failed: %v", err)
	}
	if _, ok, _ := getResume(db, testLocator); ok {
		t.Error("entry still present after delete")
	}
}

func TestWorthResuming(t *testing.T) {
	tests := []struct {
		name string
		pos  time.Duration
		dur  time.Duration
		want bool
	}{
		{"just started", 2 * time.Second, time.Hour, false},
		{"middle", 30 * time.Minute, time.Hour, true},
		{"almost done", time.Hour - 5*time.Second, time.Hour, false},
		{"unknown duration", time.Minute, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := worthResuming(tt.pos, tt.dur); got != tt.want {
				t.Errorf("worthResuming(%v, %v) = %v, want %v", tt.pos, tt.dur, got, tt.want)
			}
		})
	}
}

func TestManager_DebouncedSaveFlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	m, err := OpenPath(path, quietLog())
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}

	m.SavePosition(testLocator, time.Minute, time.Hour)
	if pos, ok := m.Position(testLocator); !ok || pos != time.Minute {
		t.Errorf("pending Position = %v, %v", pos, ok)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path, quietLog())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()
	if pos, ok := m.Position(testLocator); !ok || pos != time.Minute {
		t.Errorf("Position after reopen = %v, %v", pos, ok)
	}
}

func TestManager_DebounceWrites(t *testing.T) {
	m, err := OpenPath(":memory:", quietLog())
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	m.SavePosition(testLocator, 10*time.Second, time.Hour)
	m.SavePosition(testLocator, 20*time.Second, time.Hour)

	if _, ok, _ := getResume(m.DB(), testLocator); ok {
		t.Error("write happened before the debounce")
	}

	time.Sleep(saveDebounce + 200*time.Millisecond)
	e, ok, err := getResume(m.DB(), testLocator)
	if err != nil || !ok {
		t.Fatalf("getResume = %v, %v", ok, err)
	}
	if e.Position != 20*time.Second {
		t.Errorf("saved position = %v, want 20s", e.Position)
	}
}

func TestManager_ForgetAndTooCloseToEnd(t *testing.T) {
	m, err := OpenPath(":memory:", quietLog())
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	m.SavePosition(testLocator, time.Minute, time.Hour)
	m.Forget(testLocator)
	if _, ok := m.Position(testLocator); ok {
		t.Error("position survived Forget")
	}

	m.SavePosition(testLocator, time.Minute, time.Hour)
	m.SavePosition(testLocator, time.Hour-time.Second, time.Hour)
	if _, ok := m.Position(testLocator); ok {
		t.Error("finished media should not resume")
	}
}

func TestPruneResume_KeepsNewest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i, loc := range []string{"/a.mkv", "/b.mkv", "/c.mkv"} {
		e := resumeEntry{Position: time.Minute, UpdatedAt: time.Unix(int64(1000+i), 0)}
		if err := saveResume(db, loc, e); err != nil {
			t.Fatalf("saveResume failed: %v", err)
		}
	}

	if err := pruneResume(db, 2); err != nil {
		t.Fatalf("pruneResume failed: %v", err)
	}

	if _, ok, _ := getResume(db, "/a.mkv"); ok {
		t.Error("oldest entry should be pruned")
	}
	for _, loc := range []string{"/b.mkv", "/c.mkv"} {
		if _, ok, _ := getResume(db, loc); !ok {
			t.Errorf("%s should be kept", loc)
		}
	}
}

func TestManager_ForgetNotUndoneByFlush(t *testing.T) {
	m, err := OpenPath(":memory:", quietLog())
	require.NoError(t, err)
	defer m.Close()

	m.SavePosition(testLocator, 5*time.Minute, time.Hour)
	m.saveMu.Lock()
	m.saveTimer.Stop()
	m.saveMu.Unlock()

	// end of stream arrives while the debounced save is being written
	forgotten := make(chan struct{})
	m.beforeWrite = func() {
		go func() {
			m.Forget(testLocator)
			close(forgotten)
		}()
		time.Sleep(50 * time.Millisecond)
	}
	m.flush()
	<-forgotten

	_, ok := m.Position(testLocator)
	assert.False(t, ok, "forgotten position came back")
	_, ok, err = getResume(m.DB(), testLocator)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_WriteFailuresAreLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	m, err := OpenPath(":memory:", logrus.NewEntry(log))
	require.NoError(t, err)
	require.NoError(t, m.DB().Close())

	m.Forget(testLocator)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, testLocator, hook.LastEntry().Data["locator"])

	m.SavePosition(testLocator, time.Minute, time.Hour)
	m.saveMu.Lock()
	m.saveTimer.Stop()
	m.saveMu.Unlock()
	m.flush()
	assert.Equal(t, "cannot save resume positions", hook.LastEntry().Message)
	assert.Len(t, hook.AllEntries(), 2)
}
