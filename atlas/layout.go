package atlas

import "strconv"
import "unicode/utf8"

import "github.com/tinne26/texfont/glyph"

// Returns the preferred column count for the given number of
// characters. 78 characters get a special 26 column layout (three
// rows, one per case plus digits and symbols).
func ChooseColumns(numChars int) int {
	switch {
	case numChars == 78: return 26
	case numChars > 256: return 32
	case numChars > 64: return 16
	case numChars > 16: return 8
	default:
		return 4
	}
}

// Returns the frame dimension for the given maximum glyph dimension
// and padding: the sum rounded up to a multiple of 4, and never below
// 4 even for empty sets.
func FrameSize(maxDim, padding int) int {
	size := ((maxDim + padding + 3)/4)*4
	return max(size, 4)
}

// Returns the column count and the maximum number of rows per page.
// Fixed overrides in the config take precedence, otherwise columns
// follow [ChooseColumns]() limited to what fits in the max texture
// size, and rows are as many as fit (at least one).
func Grid(config Config, numChars, frameW, frameH int) (cols, rowsPerPage int) {
	maxTextureSize := config.MaxTextureSize
	if maxTextureSize <= 0 { maxTextureSize = DefaultMaxTextureSize }

	cols = config.FixedCols
	if cols <= 0 {
		cols = min(ChooseColumns(numChars), max(1, maxTextureSize/frameW))
	}
	rowsPerPage = config.FixedRows
	if rowsPerPage <= 0 {
		rowsPerPage = max(1, maxTextureSize/frameH)
	}
	return cols, rowsPerPage
}

// Splits the codepoints into consecutive batches of at most capacity
// codepoints each, preserving their order. Capacities below 1 are
// treated as 1. The batches share the backing array of the input.
func Batches(codepoints []rune, capacity int) [][]rune {
	capacity = max(capacity, 1)
	batches := make([][]rune, 0, (len(codepoints) + capacity - 1)/capacity)
	for start := 0; start < len(codepoints); start += capacity {
		end := min(start + capacity, len(codepoints))
		batches = append(batches, codepoints[start : end : end])
	}
	return batches
}

// Returns the name of the page at the given 0-based index: the group
// name alone if there's a single page, or followed by the 1-based
// index otherwise.
func PageName(group string, index, numPages int) string {
	if numPages == 1 { return group }
	return group + " " + strconv.Itoa(index + 1)
}

// Returns the maximum estimated glyph width and height across the
// codepoints, without rendering them. Codepoints that aren't valid
// characters are skipped.
func ComputeGlobalBounds(face glyph.Face, codepoints []rune) (maxW, maxH int) {
	for _, codePoint := range codepoints {
		if !utf8.ValidRune(codePoint) { continue }
		measure := glyph.Estimate(face, codePoint)
		maxW = max(maxW, measure.W)
		maxH = max(maxH, measure.H)
	}
	return maxW, maxH
}
