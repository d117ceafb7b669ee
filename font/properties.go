package font

import "strings"
import "sync/atomic"
import "errors"

import "golang.org/x/image/font/sfnt"

var ErrNotFound = errors.New("font property not found or empty")

// We allocate one sfnt.Buffer so it can be used in GetProperty() calls.
// These buffers can't be used concurrently though, so sfntBuffer will only
// be used if no one else is using it at the moment. Registry scans parse
// hundreds of fonts in a row, so this keeps them allocation free in the
// common case. Only limitation? Panic recovers can leave it locked.
var sfntBuffer *sfnt.Buffer
var usingSfntBuffer uint32 = 0
func getSfntBuffer() *sfnt.Buffer {
	if !atomic.CompareAndSwapUint32(&usingSfntBuffer, 0, 1) {
		return nil
	}
	if sfntBuffer == nil {
		sfntBuffer = &sfnt.Buffer{}
	}
	return sfntBuffer
}

func releaseSfntBuffer(buffer *sfnt.Buffer) {
	if buffer != nil {
		atomic.StoreUint32(&usingSfntBuffer, 0)
	}
}

// Returns the requested font property for the given font.
// The returned property string might be empty even when error is nil.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(font *sfnt.Font, property sfnt.NameID) (string, error) {
	buffer := getSfntBuffer()
	str, err := font.Name(buffer, property)
	releaseSfntBuffer(buffer)
	if err == sfnt.ErrNotFound { return "", ErrNotFound }
	return str, err
}

// Returns the family name of the given font. If the information is
// missing, [ErrNotFound] will be returned. Other errors are also
// possible (e.g., if the font naming table is invalid).
func GetFamily(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFamily)
}

// Returns the typographic family name (name ID 16) of the given font,
// falling back to the legacy family name (name ID 1) when the former
// is missing or empty. Typographic families group more than the four
// classic styles together, which is what users expect to pick from.
func GetPreferredFamily(font *sfnt.Font) (string, error) {
	family, err := GetProperty(font, sfnt.NameIDTypographicFamily)
	if err == nil && family != "" { return family, nil }
	family, err = GetFamily(font)
	if err == nil && family == "" { return "", ErrNotFound }
	return family, err
}

// Returns the subfamily name of the given font. If the information
// is missing, [ErrNotFound] will be returned. Other errors are also
// possible (e.g., if the font naming table is invalid).
//
// In most cases, the subfamily value will be one of:
//  - Regular, Italic, Bold, Bold Italic
func GetSubfamily(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDSubfamily)
}

// Returns the name of the given font. If the information is missing,
// [ErrNotFound] will be returned. Other errors are also possible (e.g.,
// if the font naming table is invalid).
func GetName(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFull)
}

// Returns the identifier of the given font. If the information is missing,
// [ErrNotFound] will be returned. Other errors are also possible (e.g.,
// if the font naming table is invalid).
func GetIdentifier(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDUniqueIdentifier)
}

// Returns the runes in the given text that can't be represented by the
// font. If runes are repeated in the input text, the returned slice may
// contain them multiple times too.
func GetMissingRunes(font *sfnt.Font, text string) ([]rune, error) {
	buffer := getSfntBuffer()
	defer releaseSfntBuffer(buffer)

	missing := make([]rune, 0)
	for _, codePoint := range text {
		index, err := font.GlyphIndex(buffer, codePoint)
		if err != nil { return missing, err }
		if index == 0 { missing = append(missing, codePoint) }
	}
	return missing, nil
}

// The four style slots a family is expected to provide, in the order
// in which they are listed.
const (
	StyleRegular    = "Regular"
	StyleBold       = "Bold"
	StyleItalic     = "Italic"
	StyleBoldItalic = "Bold Italic"
)

// Maps a free-form subfamily or registry entry name into one of the
// four canonical styles.
func NormalizeStyle(subfamily string) string {
	s := strings.ToLower(strings.TrimSpace(subfamily))
	italic := strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	bold   := strings.Contains(s, "bold")
	switch {
	case bold && italic: return StyleBoldItalic
	case bold: return StyleBold
	case italic: return StyleItalic
	default:
		return StyleRegular
	}
}

// Strips the trailing parenthesized annotation that font registries
// attach to display names (e.g. "Arial Bold (TrueType)" becomes
// "Arial Bold").
func CanonicalFamily(name string) string {
	if at := strings.IndexByte(name, '('); at >= 0 {
		return strings.TrimSpace(name[:at])
	}
	return name
}
