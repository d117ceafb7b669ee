package font

import "os"
import "io"
import "errors"
import "strconv"
import "strings"

import "golang.org/x/image/font/sfnt"

// Separator used by font specs to select a collection member,
// as in "fonts/msgothic.ttc|index=1".
const IndexSeparator = "|index="

// Splits a font spec into its file path and collection index. If the
// spec has no index suffix, index will be 0 and ok false. Malformed
// suffixes are ignored and the whole spec is returned as the path,
// like the plain spec would be.
func SplitIndex(spec string) (path string, index int, ok bool) {
	at := strings.Index(spec, IndexSeparator)
	if at < 0 { return spec, 0, false }
	idx, err := strconv.Atoi(strings.TrimSpace(spec[at + len(IndexSeparator):]))
	if err != nil || idx < 0 { return spec, 0, false }
	return spec[:at], idx, true
}

// Similar to [sfnt.Parse](), but also supporting font collections and
// including the font name in the returned values. If the index is out
// of range for the collection, the first font is returned instead. The
// bytes must not be modified while the font is in use.
//
// [sfnt.Parse]: https://pkg.go.dev/golang.org/x/image/font/sfnt#Parse.
func ParseFromBytes(fontBytes []byte, index int) (*sfnt.Font, string, error) {
	collection, err := sfnt.ParseCollection(fontBytes)
	if err != nil { return nil, "", err }
	if index < 0 || index >= collection.NumFonts() { index = 0 }
	newFont, err := collection.Font(index)
	if err != nil && index != 0 {
		newFont, err = collection.Font(0)
	}
	if err != nil { return nil, "", err }
	fontName, err := GetName(newFont)
	if err == ErrNotFound { err = nil } // unnamed fonts are still usable
	return newFont, fontName, err
}

// Attempts to parse the font located at the given spec and returns it
// along its name and any possible error. Supported formats are .ttf,
// .otf and .ttc, and the font spec may include an index suffix (see
// [SplitIndex]()).
func ParseFromPath(spec string) (*sfnt.Font, string, error) {
	path, index, _ := SplitIndex(spec)
	if !hasValidFontExtension(path) {
		return nil, "", errors.New("invalid font path '" + path + "'")
	}

	file, err := os.Open(path)
	if err != nil { return nil, "", err }
	return parseFontFileAndClose(file, index)
}

// Reads the raw bytes of the font file referenced by the font spec. The
// index suffix is stripped but otherwise ignored.
func ReadBytes(spec string) ([]byte, error) {
	path, _, _ := SplitIndex(spec)
	return os.ReadFile(path)
}

// Returns whether the file referenced by the font spec exists and is not
// a directory.
func Exists(spec string) bool {
	path, _, _ := SplitIndex(spec)
	if path == "" { return false }
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ---- helpers ----

func parseFontFileAndClose(file io.ReadCloser, index int) (*sfnt.Font, string, error) {
	fontBytes, err := io.ReadAll(file)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	err = file.Close()
	if err != nil { return nil, "", err }
	return ParseFromBytes(fontBytes, index)
}

// Whether font path ends in .ttf, .otf or .ttc (case insensitive).
func hasValidFontExtension(path string) bool {
	if len(path) < 4 { return false }
	switch strings.ToLower(path[len(path) - 4:]) {
	case ".ttf", ".otf", ".ttc":
		return true
	default:
		return false
	}
}

// Whether font path ends in .ttc (case insensitive).
func isCollectionPath(path string) bool {
	return len(path) >= 4 && strings.ToLower(path[len(path) - 4:]) == ".ttc"
}
