// internal/state/interface.go
package state

import "time"

// Interface defines the resume store contract for dependency injection and testing.
type Interface interface {
	Position(locator string) (time.Duration, bool)
	SavePosition(locator string, pos, dur time.Duration)
	Forget(locator string)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
