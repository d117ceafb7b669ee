// The mask subpackage defines the [Rasterizer] interface used by the
// glyph renderer and provides a ready-to-use implementation.
//
// In this context, "[Rasterizer]" refers to a "glyph mask rasterizer":
// before a glyph can be composited into an atlas page, its outline (a set
// of lines and curves extracted from the font file) has to be converted
// into a grid of coverage values. That's an [image.Alpha] mask, which the
// glyph package then paints in solid white onto its working canvas.
//
// The [DefaultRasterizer] wraps [golang.org/x/image/vector.Rasterizer],
// which is accurate and fast enough for offline atlas generation.
package mask
