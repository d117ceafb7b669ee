package export

import "os"
import "strconv"
import "strings"
import "unicode"

import "github.com/tinne26/texfont/atlas"

// Color key written in the common section for consumers that tint
// strokes. Fully transparent white.
const DefaultStrokeColor = "#FFFFFF00"

// Name of the page that gets uniform digit widths. Compared after
// trimming and lowercasing.
const NumbersPageName = "numbers"

// Returns the INI description of the given metrics and pages.
//
// The output has a "[common]" section followed by one section per
// page listing its lines and the width of each character in render
// order. Sections are separated by a blank line.
func FormatINI(metrics atlas.FontMetrics, pages []atlas.Page) string {
	var out strings.Builder
	writeKeyInt := func(key string, value int) {
		out.WriteString(key)
		out.WriteByte('=')
		out.WriteString(strconv.Itoa(value))
		out.WriteByte('\n')
	}

	out.WriteString("[common]\n")
	writeKeyInt("Baseline", metrics.Baseline)
	writeKeyInt("Top", metrics.Top)
	writeKeyInt("LineSpacing", metrics.LineSpacing)
	writeKeyInt("DrawExtraPixelsLeft", metrics.LeftOverlap)
	writeKeyInt("DrawExtraPixelsRight", metrics.RightOverlap)
	writeKeyInt("AdvanceExtraPixels", metrics.AdvanceExtra)
	out.WriteString("DefaultStrokeColor=" + DefaultStrokeColor + "\n")

	for i := range pages {
		page := &pages[i]
		out.WriteString("\n[" + page.Name + "]\n")
		for j, line := range page.Lines {
			out.WriteString("Line " + strconv.Itoa(j) + "=" + line + "\n")
		}
		widths := NormalizeDigitWidths(page.Name, page.Lines, page.Widths)
		for j, width := range widths {
			writeKeyInt(strconv.Itoa(j), width)
		}
	}
	return out.String()
}

// Writes [FormatINI]() to the given path.
func WriteINI(path string, metrics atlas.FontMetrics, pages []atlas.Page) error {
	return os.WriteFile(path, []byte(FormatINI(metrics, pages)), 0o644)
}

// Returns the widths to write for a page. On the numbers page, every
// digit gets the widest digit's width so numerals line up. Other
// pages (and numbers pages without any inked digit) get a copy of the
// widths unchanged.
//
// The lines and the widths are matched rune by rune.
func NormalizeDigitWidths(pageName string, lines []string, widths []int) []int {
	out := make([]int, len(widths))
	copy(out, widths)
	if strings.ToLower(strings.TrimSpace(pageName)) != NumbersPageName { return out }

	maxWidth := 0
	eachDigit(lines, len(out), func(index int) {
		maxWidth = max(maxWidth, out[index])
	})
	if maxWidth <= 0 { return out }
	eachDigit(lines, len(out), func(index int) { out[index] = maxWidth })
	return out
}

func eachDigit(lines []string, limit int, fn func(int)) {
	index := 0
	for _, line := range lines {
		for _, codePoint := range line {
			if index >= limit { return }
			if unicode.IsDigit(codePoint) { fn(index) }
			index += 1
		}
	}
}
