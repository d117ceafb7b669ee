package font

import "io/fs"
import "sort"
import "bytes"
import "errors"
import "slices"
import "strconv"
import "strings"
import "path/filepath"

import "golang.org/x/image/font/sfnt"
import seehuhn "seehuhn.de/go/sfnt"

// A font family and the font specs for each of its styles.
type Family struct {
	name string
	styles map[string]string
	exact map[string]bool // style named as such, not only normalized to it
}

// Returns the family name.
func (self *Family) Name() string { return self.name }

// Returns the styles available for the family. The four classic
// styles come first, in the order Regular, Bold, Italic and Bold
// Italic. Any other styles follow in alphabetical order.
func (self *Family) Styles() []string {
	styles := make([]string, 0, len(self.styles))
	for style := range self.styles {
		styles = append(styles, style)
	}
	sort.Slice(styles, func(i, j int) bool {
		ri, rj := styleRank(styles[i]), styleRank(styles[j])
		if ri != rj { return ri < rj }
		return styles[i] < styles[j]
	})
	return styles
}

// Returns the font spec for the given style. Specs for collection
// members include an index suffix (see [SplitIndex]()).
func (self *Family) Path(style string) (string, bool) {
	spec, found := self.styles[style]
	return spec, found
}

// Returns the first style of the family and its font spec. This is
// "Regular" whenever the family has it.
func (self *Family) Default() (style, spec string) {
	styles := self.Styles()
	if len(styles) == 0 { return "", "" }
	return styles[0], self.styles[styles[0]]
}

func styleRank(style string) int {
	switch style {
	case StyleRegular: return 0
	case StyleBold: return 1
	case StyleItalic: return 2
	case StyleBoldItalic: return 3
	default:
		return 4
	}
}

// A collection of font families, each resolving its styles to
// concrete font files.
//
// Registries are usually created with [Enumerate](), but they can
// also be built manually with [Registry.Add]() and
// [Registry.ParseFromPath]().
type Registry struct {
	families map[string]*Family
}

// Creates a new, empty font [Registry].
func NewRegistry() *Registry {
	return &Registry{ families: make(map[string]*Family) }
}

// Returns the current number of families in the registry.
func (self *Registry) Size() int { return len(self.families) }

// Finds out whether a family with the given name exists in the registry.
func (self *Registry) HasFamily(name string) bool {
	_, found := self.families[name]
	return found
}

// Returns the family with the given name, or nil if not found.
func (self *Registry) GetFamily(name string) *Family {
	family, found := self.families[name]
	if found { return family }
	return nil
}

// Returns the names of all the families in the registry, sorted.
func (self *Registry) Families() []string {
	names := make([]string, 0, len(self.families))
	for name := range self.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// An error returned by [Registry.Add]() when the family already has
// a font for the given style. The existing entry is kept.
var ErrAlreadyPresent = errors.New("font style already present in the registry")

// Adds a font spec to the registry under the given family and style.
// The style is normalized with [NormalizeStyle](). Empty family names
// are rejected with [ErrNotFound].
//
// The first font added for a style is kept, unless it only got there
// through normalization (e.g. "Black" or "Light" become "Regular") and
// the new style names the canonical style exactly. That way the actual
// Regular file of a family wins over its heavier or lighter weights.
func (self *Registry) Add(family, style, spec string) error {
	if family == "" { return ErrNotFound }
	canonical := NormalizeStyle(style)
	exact := strings.EqualFold(strings.TrimSpace(style), canonical)
	entry, found := self.families[family]
	if !found {
		entry = &Family{
			name: family,
			styles: make(map[string]string, 4),
			exact: make(map[string]bool, 4),
		}
		self.families[family] = entry
	}
	if _, found := entry.styles[canonical]; found {
		if entry.exact[canonical] || !exact { return ErrAlreadyPresent }
	}
	entry.styles[canonical] = spec
	entry.exact[canonical] = exact
	return nil
}

// Special error that can be used with [Registry.EachFamily]() to
// break early. When used, the function will return early but still
// return a nil error.
var ErrBreakEach = errors.New("EachFamily() early break")

// Calls the given function for each family in the registry, in
// alphabetical order.
//
// If the given function returns a non-nil error, the method will
// immediately stop and return that error, with the only exception
// of [ErrBreakEach]. Otherwise, [Registry.EachFamily]() will always
// return nil.
func (self *Registry) EachFamily(familyFunc func(*Family) error) error {
	for _, name := range self.Families() {
		err := familyFunc(self.families[name])
		if err != nil {
			if err == ErrBreakEach { return nil }
			return err
		}
	}
	return nil
}

// Parses the font file at the given path and adds every font in it
// to the registry. Collections add each member with its own index
// suffix. Returns the number of fonts added, the number of fonts
// skipped because their family and style were already present, and
// any error preventing the file from being read at all.
func (self *Registry) ParseFromPath(path string) (added, skipped int, err error) {
	fontBytes, err := ReadBytes(path)
	if err != nil { return 0, 0, err }

	collection, err := sfnt.ParseCollection(fontBytes)
	if err != nil { return 0, 0, err }
	numFonts := collection.NumFonts()
	for i := 0; i < numFonts; i++ {
		spec := path
		if numFonts > 1 || isCollectionPath(path) {
			spec = path + IndexSeparator + strconv.Itoa(i)
		}

		var family, style string
		font, err := collection.Font(i)
		if err == nil {
			family, style, err = familyAndStyle(font)
		}
		if err != nil && numFonts == 1 {
			family, style, err = fallbackFamilyAndStyle(fontBytes)
		}
		if err != nil { continue } // unnamed members can't be listed

		err = self.Add(family, style, spec)
		if err == ErrAlreadyPresent {
			skipped += 1
			continue
		}
		if err == nil { added += 1 }
	}
	return added, skipped, nil
}

// The style comes from the typographic subfamily (name ID 17) when
// present, since the legacy subfamily says "Regular" for weights like
// "Black" that were split into their own legacy family.
func familyAndStyle(font *sfnt.Font) (string, string, error) {
	family, err := GetPreferredFamily(font)
	if err != nil { return "", "", err }
	subfamily, err := GetProperty(font, sfnt.NameIDTypographicSubfamily)
	if err == nil && subfamily != "" { return family, subfamily, nil }
	subfamily, err = GetSubfamily(font)
	if err != nil && err != ErrNotFound { return "", "", err }
	return family, subfamily, nil
}

// Some fonts carry name tables that x/image can't decode (e.g. only
// Macintosh platform records with uncommon encodings). The seehuhn
// reader normalizes those, so we ask it before giving up.
func fallbackFamilyAndStyle(fontBytes []byte) (string, string, error) {
	info, err := seehuhn.Read(bytes.NewReader(fontBytes))
	if err != nil { return "", "", err }
	if info.FamilyName == "" { return "", "", ErrNotFound }
	style := StyleRegular
	if info.IsBold && info.IsItalic {
		style = StyleBoldItalic
	} else if info.IsBold {
		style = StyleBold
	} else if info.IsItalic {
		style = StyleItalic
	}
	return info.FamilyName, style, nil
}

func fontFilesIn(dirName string) ([]string, error) {
	absDirPath, err := filepath.Abs(dirName)
	if err != nil { return nil, err }

	var paths []string
	err = filepath.WalkDir(absDirPath,
		func(path string, info fs.DirEntry, err error) error {
			if err != nil {
				if path == absDirPath { return err }
				return nil // unreadable subdirectories are skipped
			}
			if info.IsDir() || !hasValidFontExtension(path) { return nil }
			paths = append(paths, path)
			return nil
		})
	return paths, err
}
