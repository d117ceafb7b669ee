package font

import "bytes"
import "slices"

import "golang.org/x/image/font/sfnt"
import seehuhn "seehuhn.de/go/sfnt"

import "github.com/tinne26/texfont/charset"

// Returns the sorted codepoints present in the best character map of
// the font referenced by the font spec, excluding codepoints in Unicode's
// "Other" category (see [charset.IsPrintable]()).
//
// Standalone fonts are decoded with a full cmap reader that picks the
// best subtable. Collections, and fonts that reader can't make sense
// of, are scanned glyph by glyph instead.
func Codepoints(spec string) ([]rune, error) {
	path, index, _ := SplitIndex(spec)
	fontBytes, err := ReadBytes(path)
	if err != nil { return nil, err }
	if !isCollectionPath(path) {
		codepoints, err := bestCmapCodepoints(fontBytes)
		if err == nil { return codepoints, nil }
	}

	font, _, err := ParseFromBytes(fontBytes, index)
	if err != nil { return nil, err }
	return ScanCodepoints(font)
}

// Returns the sorted printable codepoints the font maps to a glyph,
// probing every valid Unicode scalar value.
func ScanCodepoints(font *sfnt.Font) ([]rune, error) {
	var buffer sfnt.Buffer
	codepoints := make([]rune, 0, 256)
	for codePoint := rune(0); codePoint <= 0x10FFFF; codePoint++ {
		if codePoint == 0xD800 { codePoint = 0xE000 } // skip surrogates
		if !charset.IsPrintable(codePoint) { continue }
		index, err := font.GlyphIndex(&buffer, codePoint)
		if err != nil { return nil, err }
		if index != 0 { codepoints = append(codepoints, codePoint) }
	}
	return codepoints, nil
}

func bestCmapCodepoints(fontBytes []byte) ([]rune, error) {
	info, err := seehuhn.Read(bytes.NewReader(fontBytes))
	if err != nil { return nil, err }
	if info.CMapTable == nil { return nil, ErrNotFound }
	subtable, err := info.CMapTable.GetBest()
	if err != nil { return nil, err }

	low, high := subtable.CodeRange()
	codepoints := make([]rune, 0, 256)
	for codePoint := low; codePoint <= high; codePoint++ {
		if !charset.IsPrintable(codePoint) { continue }
		if subtable.Lookup(codePoint) != 0 {
			codepoints = append(codepoints, codePoint)
		}
	}
	slices.Sort(codepoints)
	return codepoints, nil
}
