package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/vdplayer/internal/db"
)

const (
	// minResume is the least progress worth remembering.
	minResume = 5 * time.Second
	// endMargin: positions this close to the end count as finished.
	endMargin = 10 * time.Second
)

type resumeEntry struct {
	Position  time.Duration
	Duration  time.Duration
	UpdatedAt time.Time
}

// worthResuming reports whether pos is far enough from both ends. An
// unknown duration (0) only applies the lower bound.
func worthResuming(pos, dur time.Duration) bool {
	if pos < minResume {
		return false
	}
	if dur > 0 && dur-pos < endMargin {
		return false
	}
	return true
}

func getResume(q db.Querier, locator string) (resumeEntry, bool, error) {
	row := q.QueryRow(`
		SELECT position_ms, duration_ms, updated_at
		FROM resume_positions WHERE locator = ?
	`, locator)

	var posMS, durMS, updated int64
	err := row.Scan(&posMS, &durMS, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return resumeEntry{}, false, nil
	}
	if err != nil {
		return resumeEntry{}, false, err
	}
	return resumeEntry{
		Position:  time.Duration(posMS) * time.Millisecond,
		Duration:  time.Duration(durMS) * time.Millisecond,
		UpdatedAt: time.Unix(updated, 0),
	}, true, nil
}

func saveResume(q db.Querier, locator string, e resumeEntry) error {
	_, err := q.Exec(`
		INSERT INTO resume_positions (locator, position_ms, duration_ms, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(locator) DO UPDATE SET
			position_ms = excluded.position_ms,
			duration_ms = excluded.duration_ms,
			updated_at = excluded.updated_at
	`, locator, e.Position.Milliseconds(), e.Duration.Milliseconds(), e.UpdatedAt.Unix())
	return err
}

func deleteResume(q db.Querier, locator string) error {
	_, err := q.Exec(`DELETE FROM resume_positions WHERE locator = ?`, locator)
	return err
}

// pruneResume keeps only the keep most recently updated entries.
func pruneResume(q db.Querier, keep int) error {
	_, err := q.Exec(`
		DELETE FROM resume_positions WHERE locator NOT IN (
			SELECT locator FROM resume_positions
			ORDER BY updated_at DESC, locator
			LIMIT ?
		)
	`, keep)
	return err
}
