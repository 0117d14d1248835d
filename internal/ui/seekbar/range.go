// Package seekbar implements the position slider and the mirror that keeps
// it in sync with playback without echoing its own updates back as seeks.
package seekbar

import "github.com/samber/lo"

// Range is a bounded value control. Setting a value that differs from the
// current one, after clamping, invokes every value-changed handler before
// SetValue returns.
type Range struct {
	min, max float64
	value    float64
	handlers []func(float64)
}

// NewRange creates a range over [minV, maxV].
func NewRange(minV, maxV float64) *Range {
	maxV = max(maxV, minV)
	return &Range{min: minV, max: maxV, value: minV}
}

// OnValueChanged registers fn.
func (r *Range) OnValueChanged(fn func(float64)) {
	r.handlers = append(r.handlers, fn)
}

// SetRange changes the bounds and re-clamps the value.
func (r *Range) SetRange(minV, maxV float64) {
	r.min, r.max = minV, max(maxV, minV)
	r.SetValue(r.value)
}

// SetValue clamps v to the bounds and notifies handlers if it changed.
func (r *Range) SetValue(v float64) {
	v = lo.Clamp(v, r.min, r.max)
	if v == r.value {
		return
	}
	r.value = v
	for _, fn := range r.handlers {
		fn(v)
	}
}

func (r *Range) Value() float64 { return r.value }
func (r *Range) Min() float64 { return r.min }
func (r *Range) Max() float64 { return r.max }

// Fraction returns the value's position within the bounds, in [0, 1].
func (r *Range) Fraction() float64 {
	if r.max <= r.min {
		return 0
	}
	return (r.value - r.min) / (r.max - r.min)
}
