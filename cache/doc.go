// The cache subpackage provides a memory bounded cache for rendered
// glyph bitmaps.
//
// Rasterizing and cropping a glyph is the most expensive step of an
// atlas generation run. Runs that repeat work, like the retry with
// reset offsets or previews that regenerate pages after each small
// tweak, can share a [BitmapCache] to skip it: bitmaps only depend on
// the font, the size and the codepoint, never on the layout tunables.
//
// As far as sizing goes, a 32px glyph takes around 4KiB, so a full
// Latin-1 set is well below 1MiB. Sets with thousands of CJK glyphs
// need a few dozen MiBs to be fully cached, and the [BitmapCache.PeakSize]()
// method can help figuring out what a given workload actually uses.
package cache
