package mpris

import "github.com/llehouerou/vdplayer/internal/session"

// StatusSource publishes the session status; Status must be safe to call
// from the D-Bus goroutine.
type StatusSource interface {
	Status() session.Status
}

var _ StatusSource = (*session.Coordinator)(nil)
