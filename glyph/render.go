package glyph

import "image"
import "image/color"

import "golang.org/x/image/draw"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/texfont/mask"

// A rendered character. The image origin is the top-left corner of
// the working canvas, where the pen was placed at (0, ascent), so
// only the right and bottom sides are trimmed by the crop. This keeps
// every bitmap aligned to the same baseline.
type CharBitmap struct {
	Codepoint rune
	Image *image.RGBA
	WidthAdv int
	BBoxW, BBoxH int

	AdvanceTier Tier
	BoundsTier Tier
	DrawTier Tier
}

// Whether any of the capabilities involved in the rendering had to
// fall back.
func (self *CharBitmap) Degraded() bool {
	return self.AdvanceTier != TierPrimary || self.BoundsTier != TierPrimary || self.DrawTier != TierPrimary
}

// Renders the character with a freshly allocated [mask.DefaultRasterizer].
// See [RenderWith]().
func Render(face Face, codePoint rune) CharBitmap {
	return RenderWith(face, codePoint, &mask.DefaultRasterizer{})
}

// Renders the character in opaque white over a transparent canvas and
// crops the result to its visible pixels.
//
// Characters without visible pixels (e.g. spaces) become 1px tall
// transparent bitmaps as wide as their advance (at least 1px).
// Characters whose outline can't be obtained or rasterized become
// 1x1 transparent bitmaps with DrawTier set to [TierPlaceholder].
func RenderWith(face Face, codePoint rune, rasterizer mask.Rasterizer) CharBitmap {
	advance, advanceTier := AdvanceOf(face, codePoint)
	estimate := Estimate(face, codePoint)
	bitmap := CharBitmap{
		Codepoint: codePoint,
		WidthAdv: advance,
		AdvanceTier: advanceTier,
		BoundsTier: estimate.Tier,
	}

	canvasW := max(estimate.W + 4, advance)
	canvasH := max(estimate.H + 4, face.SizePx() + 8)
	canvas, ok := drawOnCanvas(face, codePoint, rasterizer, canvasW, canvasH)
	if !ok {
		bitmap.DrawTier = TierPlaceholder
		bitmap.setImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
		return bitmap
	}

	right, bottom := visibleExtent(canvas)
	if right == 0 || bottom == 0 {
		bitmap.setImage(image.NewRGBA(image.Rect(0, 0, max(advance, 1), 1)))
		return bitmap
	}
	bitmap.setImage(cropTo(canvas, right, bottom))
	return bitmap
}

func (self *CharBitmap) setImage(img *image.RGBA) {
	self.Image = img
	self.BBoxW = img.Rect.Dx()
	self.BBoxH = img.Rect.Dy()
}

// Draws the glyph with the pen at (0, ascent). Any failure, including
// a panic from the rasterizer on a malformed outline, reports !ok.
func drawOnCanvas(face Face, codePoint rune, rasterizer mask.Rasterizer, w, h int) (canvas *image.RGBA, ok bool) {
	defer func() {
		if recover() != nil { canvas, ok = nil, false }
	}()

	outline, err := face.Outline(codePoint)
	if err != nil { return nil, false }
	alphaMask, err := mask.Rasterize(outline, rasterizer, fixed.Point26_6{})
	if err != nil { return nil, false }

	canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	if alphaMask == nil { return canvas, true } // nothing to draw
	pen := image.Pt(0, face.Ascent())
	target := alphaMask.Rect.Add(pen)
	draw.DrawMask(canvas, target, image.NewUniform(color.White), image.Point{}, alphaMask, alphaMask.Rect.Min, draw.Over)
	return canvas, true
}

// Returns the exclusive right and bottom limits of the non transparent
// pixels in the image. Both are 0 if the image is fully transparent.
func visibleExtent(img *image.RGBA) (right, bottom int) {
	bounds := img.Rect
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			if row[x*4 + 3] == 0 { continue }
			right  = max(right, x + 1)
			bottom = y + 1
		}
	}
	return right, bottom
}

func cropTo(img *image.RGBA, w, h int) *image.RGBA {
	cropped := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(cropped, image.Point{}, img, image.Rect(0, 0, w, h), draw.Src, nil)
	return cropped
}
