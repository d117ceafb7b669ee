package glyph

import "slices"
import "errors"

import "golang.org/x/image/font"
import "golang.org/x/image/font/opentype"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import fontutils "github.com/tinne26/texfont/font"
import "github.com/tinne26/texfont/sizer"

// Returned by [Face] methods when the font doesn't provide the
// requested glyph data.
var ErrMissingGlyph = errors.New("glyph not available")

// Returned by [NewSfntFace]() and [Open]() for non-positive sizes.
var ErrInvalidSize = errors.New("font size must be positive")

// A font loaded at a fixed pixel size. All methods work in pixels
// with the y axis growing downwards and the pen origin placed on
// the baseline.
//
// Faces are not safe for concurrent use.
type Face interface {
	// Returns the size the face was loaded at, in pixels.
	SizePx() int

	// Returns the whole-pixel ascent of the face.
	Ascent() int

	// Returns the horizontal advance of the character.
	Advance(rune) (fixed.Int26_6, error)

	// Returns the ink bounding box of the character, relative to
	// the pen origin.
	Bounds(rune) (fixed.Rectangle26_6, error)

	// Returns the legacy "text size" measurement of the character:
	// its advance width and the line height, in whole pixels.
	Extent(rune) (width, height int, err error)

	// Returns the scaled outline of the character, relative to the
	// pen origin.
	Outline(rune) (sfnt.Segments, error)
}

var _ Face = (*SfntFace)(nil)

// A [Face] backed by an [sfnt.Font]. Advances and bounds come from an
// [opentype] face, outlines from the font itself and the ascent from
// a [sizer.DefaultSizer].
type SfntFace struct {
	font *sfnt.Font
	face font.Face
	buffer sfnt.Buffer
	sizer sizer.DefaultSizer
	sizePx int
}

// Creates a new [SfntFace] for the given font at the given size.
func NewSfntFace(sfntFont *sfnt.Font, sizePx int) (*SfntFace, error) {
	if sizePx <= 0 { return nil, ErrInvalidSize }
	face, err := opentype.NewFace(sfntFont, &opentype.FaceOptions{
		Size: float64(sizePx),
		DPI: 72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
	if err != nil { return nil, err }

	self := &SfntFace{ font: sfntFont, face: face, sizePx: sizePx }
	err = self.sizer.NotifyChange(sfntFont, &self.buffer, fixed.I(sizePx))
	if err != nil { return nil, err }
	return self, nil
}

// Parses the font referenced by the font spec (see [fontutils.ParseFromPath]())
// and creates a [SfntFace] for it.
func Open(spec string, sizePx int) (*SfntFace, error) {
	if sizePx <= 0 { return nil, ErrInvalidSize }
	sfntFont, _, err := fontutils.ParseFromPath(spec)
	if err != nil { return nil, err }
	return NewSfntFace(sfntFont, sizePx)
}

// Returns the underlying font.
func (self *SfntFace) Font() *sfnt.Font { return self.font }

// Returns the sizer synced to the face's font and size.
func (self *SfntFace) Sizer() sizer.Sizer { return &self.sizer }

// Releases the resources of the underlying opentype face.
func (self *SfntFace) Close() error { return self.face.Close() }

// Satisfies the [Face] interface.
func (self *SfntFace) SizePx() int { return self.sizePx }

// Satisfies the [Face] interface.
func (self *SfntFace) Ascent() int { return self.sizer.Ascent() }

// Satisfies the [Face] interface.
func (self *SfntFace) Advance(codePoint rune) (fixed.Int26_6, error) {
	advance, ok := self.face.GlyphAdvance(codePoint)
	if !ok { return 0, ErrMissingGlyph }
	return advance, nil
}

// Satisfies the [Face] interface.
func (self *SfntFace) Bounds(codePoint rune) (fixed.Rectangle26_6, error) {
	bounds, _, ok := self.face.GlyphBounds(codePoint)
	if !ok { return fixed.Rectangle26_6{}, ErrMissingGlyph }
	return bounds, nil
}

// Satisfies the [Face] interface. Missing characters are measured
// with the font's notdef glyph.
func (self *SfntFace) Extent(codePoint rune) (int, int, error) {
	_, advance := font.BoundString(self.face, string(codePoint))
	return advance.Round(), self.sizer.LineSpacing(), nil
}

// Satisfies the [Face] interface. Missing characters get the font's
// notdef outline.
func (self *SfntFace) Outline(codePoint rune) (sfnt.Segments, error) {
	index, err := self.font.GlyphIndex(&self.buffer, codePoint)
	if err != nil { return nil, err }
	segments, err := self.font.LoadGlyph(&self.buffer, index, fixed.I(self.sizePx), nil)
	if err != nil { return nil, err }
	return slices.Clone(segments), nil // buffer owned segments
}
