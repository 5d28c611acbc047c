package ui

// Viewport is the visible window over the country list. It implements
// selector.Scroller by moving Offset the least amount that brings an index
// into view.
type Viewport struct {
	Offset int
	Height int
	Len    int
	// Scrolls counts ScrollIntoView calls.
	Scrolls int
}

// ScrollIntoView implements selector.Scroller.
func (v *Viewport) ScrollIntoView(index int) {
	v.Scrolls++
	if v.Height <= 0 || index < 0 {
		return
	}
	switch {
	case index < v.Offset:
		v.Offset = index
	case index >= v.Offset+v.Height:
		v.Offset = index - v.Height + 1
	}
	v.clamp()
}

// SetHeight resizes the window, keeping focus visible when given.
func (v *Viewport) SetHeight(h, focused int) {
	v.Height = max(h, 1)
	v.clamp()
	if focused >= 0 && (focused < v.Offset || focused >= v.Offset+v.Height) {
		v.Offset = focused - v.Height + 1
		v.clamp()
	}
}

// Visible returns the half-open index range shown.
func (v *Viewport) Visible() (start, end int) {
	return v.Offset, min(v.Offset+v.Height, v.Len)
}

// IndexAt maps a row within the window to a list index; -1 when outside.
func (v *Viewport) IndexAt(row int) int {
	start, end := v.Visible()
	if row < 0 || start+row >= end {
		return -1
	}
	return start + row
}

func (v *Viewport) clamp() {
	v.Offset = min(v.Offset, max(v.Len-v.Height, 0))
	v.Offset = max(v.Offset, 0)
}
