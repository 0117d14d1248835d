package ui

import "testing"

func TestBase_SetSize(t *testing.T) {
	var b Base
	b.SetSize(80, 24)

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("Size() = %d, %d; want 80, 24", w, h)
	}
	if b.Width() != 80 || b.Height() != 24 {
		t.Errorf("Width/Height = %d, %d; want 80, 24", b.Width(), b.Height())
	}
}
