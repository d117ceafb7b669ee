// The glyph subpackage renders single characters into tightly cropped
// bitmaps ready to be placed on atlas pages.
//
// Fonts are accessed through the [Face] capability interface. Each of
// its measurement methods may fail for any given character, so all the
// functions in this package fall back progressively to less precise
// capabilities and report which [Tier] ended up being used instead of
// returning errors. A character that can't be rendered at all still
// produces a degenerate bitmap, so callers can treat rendering as a
// total function.
package glyph
