package sizer

import "errors"

import "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

var _ Sizer = (*DefaultSizer)(nil)

// Returned by [DefaultSizer.NotifyChange]() when the font is nil or
// the size is not positive.
var ErrInvalidSize = errors.New("sizer requires a non-nil font and a positive size")

// The default [Sizer]. Ascent is rounded up and descent rounded down,
// matching how FreeType reports whole-pixel size metrics.
type DefaultSizer struct {
	cachedAscent  int
	cachedDescent int
}

// Satisfies the [Sizer] interface.
func (self *DefaultSizer) Ascent() int { return self.cachedAscent }

// Satisfies the [Sizer] interface.
func (self *DefaultSizer) Descent() int { return self.cachedDescent }

// Satisfies the [Sizer] interface.
func (self *DefaultSizer) LineSpacing() int {
	return self.cachedAscent + self.cachedDescent
}

// Satisfies the [Sizer] interface.
func (self *DefaultSizer) NotifyChange(sfntFont *sfnt.Font, buffer *sfnt.Buffer, size fixed.Int26_6) error {
	if sfntFont == nil || size <= 0 {
		self.cachedAscent  = 0
		self.cachedDescent = 0
		return ErrInvalidSize
	}

	metrics, err := sfntFont.Metrics(buffer, size, font.HintingNone)
	if err != nil { return err }
	self.cachedAscent  = metrics.Ascent.Ceil()
	self.cachedDescent = metrics.Descent.Floor()
	if self.cachedDescent < 0 { self.cachedDescent = -self.cachedDescent }
	return nil
}
