package sizer

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

// Before any glyph can be laid out on an atlas page we need some
// information related to the "font metrics": how far the baseline is
// from the top of a line and how far apart consecutive lines are.
//
// Sizers are the interface that the atlas generator uses to obtain
// that information. All values are integer pixel offsets, since the
// consuming bitmap-font renderer only understands whole pixels.
type Sizer interface {
	// Returns the ascent of the latest notified font and size, as
	// an absolute value.
	Ascent() int

	// Returns the descent of the latest notified font and size, as
	// an absolute value.
	Descent() int

	// Utility method equivalent to Ascent() + Descent().
	LineSpacing() int

	// Must be called to sync the state of the sizer with the given
	// font and size before querying any of the other methods.
	NotifyChange(*sfnt.Font, *sfnt.Buffer, fixed.Int26_6) error
}

// Returns the page-relative baseline, top and line spacing for the
// given sizer. The values are pre-offset: padding and the user tunables
// are applied later, when the final metrics of a generation run are
// derived.
func Measure(sizer Sizer) (baseline, top, lineSpacing int) {
	return sizer.Ascent(), 0, sizer.LineSpacing()
}
