// The charset subpackage decides which codepoints end up in an atlas.
//
// It provides the named presets used to restrict a font's character
// map to a purpose-specific subset (see [Filter]()), the printable
// filter applied to raw cmap data, and a small expression language to
// write codepoint sets by hand:
//
//	U+0020-U+007E, 'Ä', 0x400..0x4FF, 8364
//
// Items are separated by commas. Each item is a single codepoint or
// an inclusive range written with "-" or "..". Codepoints can be given
// as U+XXXX, as 0x hex values, as decimal numbers or as quoted Go rune
// literals.
package charset
