package charset

import "slices"
import "strings"
import "unicode"

import "golang.org/x/text/unicode/runenames"

// Preset names accepted by [Filter]().
const (
	PresetNone    = ""
	PresetNumbers = "numbers"
	PresetPlane2  = "plane2"
)

// The page group name used when no preset applies.
const DefaultGroup = "main"

// Punctuation kept by the numbers preset along with the ASCII digits.
var NumbersAllowlist = []rune{'%', '.', '!', ':', 'x', '?'}

// All the presets known to [Filter](), in display order.
var Presets = []string{PresetNumbers, PresetPlane2}

var plane2Prefixes = []string{"GREEK", "CYRILLIC", "ARMENIAN", "HEBREW", "ARROW", "COMBINING"}
var plane2Infixes  = []string{" ARROW", "COMBINING"}

// Returns whether the given name refers to a known preset. The empty
// string is a valid preset too (no filtering).
func IsPreset(name string) bool {
	name = normalizePreset(name)
	return name == PresetNone || slices.Contains(Presets, name)
}

// Returns the canonical page group name for the given preset.
func GroupName(preset string) string {
	switch normalizePreset(preset) {
	case PresetNumbers: return "numbers"
	case PresetPlane2: return "plane-2"
	default:
		return DefaultGroup
	}
}

// Applies the given preset to the codepoints and returns the kept
// codepoints (in their original order) together with the canonical
// group name for the preset. Unknown presets leave the set unchanged.
// The input slice is never modified.
func Filter(codepoints []rune, preset string) ([]rune, string) {
	preset = normalizePreset(preset)
	var keep func(rune) bool
	switch preset {
	case PresetNumbers: keep = isNumbersRune
	case PresetPlane2: keep = isPlane2Rune
	default:
		return slices.Clone(codepoints), DefaultGroup
	}

	kept := make([]rune, 0, len(codepoints))
	for _, codePoint := range codepoints {
		if keep(codePoint) { kept = append(kept, codePoint) }
	}
	return kept, GroupName(preset)
}

// Returns whether the codepoint is assigned and outside Unicode's
// "Other" category (controls, format characters, surrogates and
// private use areas).
func IsPrintable(codePoint rune) bool {
	return unicode.In(codePoint, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z)
}

// Returns the codepoints that pass [IsPrintable](), in order.
func Printable(codepoints []rune) []rune {
	kept := make([]rune, 0, len(codepoints))
	for _, codePoint := range codepoints {
		if IsPrintable(codePoint) { kept = append(kept, codePoint) }
	}
	return kept
}

func isNumbersRune(codePoint rune) bool {
	if codePoint >= '0' && codePoint <= '9' { return true }
	return slices.Contains(NumbersAllowlist, codePoint)
}

func isPlane2Rune(codePoint rune) bool {
	name := runenames.Name(codePoint)
	if name == "" || name[0] == '<' { return false } // unnamed or a range label
	for _, prefix := range plane2Prefixes {
		if strings.HasPrefix(name, prefix) { return true }
	}
	for _, infix := range plane2Infixes {
		if strings.Contains(name, infix) { return true }
	}
	return false
}

func normalizePreset(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
