package seekbar

// Mirror shows the playback position on a Range and reports only the
// changes the user made.
//
// Programmatic writes hold a guard for the duration of one SetValue call,
// so the value-changed notification they trigger synchronously is not
// mistaken for a user seek.
type Mirror struct {
	rng        *Range
	suppressed bool
	onUser     func(seconds float64)
}

// NewMirror wraps r. onUser is called with the new value, in seconds, for
// every change not made through the mirror.
func NewMirror(r *Range, onUser func(seconds float64)) *Mirror {
	m := &Mirror{rng: r, onUser: onUser}
	r.OnValueChanged(m.valueChanged)
	return m
}

// Range returns the wrapped control.
func (m *Mirror) Range() *Range { return m.rng }

// SetDisplayedPosition moves the slider without triggering a seek.
func (m *Mirror) SetDisplayedPosition(seconds float64) {
	defer m.suppress()()
	m.rng.SetValue(seconds)
}

// SetDuration sets the slider's upper bound without triggering a seek.
func (m *Mirror) SetDuration(seconds float64) {
	defer m.suppress()()
	m.rng.SetRange(0, seconds)
}

// UserSet applies a value chosen by the user; it is forwarded like any
// other unguarded change.
func (m *Mirror) UserSet(seconds float64) {
	m.rng.SetValue(seconds)
}

// Suppressed reports whether the guard is held.
func (m *Mirror) Suppressed() bool { return m.suppressed }

// suppress sets the guard and returns its release, which restores the
// previous value so holds can nest.
func (m *Mirror) suppress() func() {
	prev := m.suppressed
	m.suppressed = true
	return func() { m.suppressed = prev }
}

func (m *Mirror) valueChanged(v float64) {
	if m.suppressed || m.onUser == nil {
		return
	}
	m.onUser(v)
}
