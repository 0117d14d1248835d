//go:build !linux

package inhibit

import "github.com/sirupsen/logrus"

// New returns an inhibitor that fails every request with ErrUnsupported.
func New(_ Backend, log *logrus.Entry) Inhibitor {
	log.Debug("idle inhibition not supported on this platform")
	return disabled{err: ErrUnsupported}
}
