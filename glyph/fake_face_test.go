package glyph

import "errors"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

var errFake = errors.New("fake capability failure")

// A configurable face drawing every character as the same rectangle.
type fakeFace struct {
	size, ascent int
	advance fixed.Int26_6
	rect fixed.Rectangle26_6 // ink bounds relative to the pen
	extentW, extentH int

	failAdvance, failBounds, failExtent bool
	failOutline, panicOutline, emptyOutline bool
}

func newFakeFace() *fakeFace {
	return &fakeFace{
		size: 16, ascent: 12,
		advance: fixed.I(8),
		rect: fixed.R(1, -10, 6, 0),
		extentW: 9, extentH: 15,
	}
}

func (self *fakeFace) SizePx() int { return self.size }
func (self *fakeFace) Ascent() int { return self.ascent }

func (self *fakeFace) Advance(rune) (fixed.Int26_6, error) {
	if self.failAdvance { return 0, errFake }
	return self.advance, nil
}

func (self *fakeFace) Bounds(rune) (fixed.Rectangle26_6, error) {
	if self.failBounds { return fixed.Rectangle26_6{}, errFake }
	if self.emptyOutline { return fixed.Rectangle26_6{}, nil }
	return self.rect, nil
}

func (self *fakeFace) Extent(rune) (int, int, error) {
	if self.failExtent { return 0, 0, errFake }
	return self.extentW, self.extentH, nil
}

func (self *fakeFace) Outline(rune) (sfnt.Segments, error) {
	if self.failOutline { return nil, errFake }
	if self.panicOutline { panic("malformed outline") }
	if self.emptyOutline { return nil, nil }
	min, max := self.rect.Min, self.rect.Max
	return sfnt.Segments{
		{ Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{min} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{{X: max.X, Y: min.Y}} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{max} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{{X: min.X, Y: max.Y}} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{min} },
	}, nil
}
