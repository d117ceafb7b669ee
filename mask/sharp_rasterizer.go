package mask

import "image"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

var _ Rasterizer = (*SharpRasterizer)(nil)

// Default cutoff for [SharpRasterizer]. Coverage values at or above it
// become fully opaque.
const DefaultSharpThreshold = 128

// A rasterizer that quantizes mask values to fully opaque or fully
// transparent. Pixel art fonts exported at their native size (or an
// integer multiple) keep hard edges this way.
type SharpRasterizer struct {
	DefaultRasterizer

	// Zero means [DefaultSharpThreshold].
	Threshold uint8
}

// Satisfies the [Rasterizer] interface.
func (self *SharpRasterizer) Rasterize(outline sfnt.Segments, origin fixed.Point26_6) (*image.Alpha, error) {
	mask, err := self.DefaultRasterizer.Rasterize(outline, origin)
	if err != nil { return mask, err }
	threshold := self.Threshold
	if threshold == 0 { threshold = DefaultSharpThreshold }
	for i, value := range mask.Pix {
		if value < threshold {
			mask.Pix[i] = 0
		} else {
			mask.Pix[i] = 255
		}
	}
	return mask, nil
}
