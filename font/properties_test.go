package font

import (
	"strings"
	"testing"

	"golang.org/x/image/font/sfnt"
)

func TestGetProperties(t *testing.T) {
	var value string
	var err error

	// ensure state sanity
	buffer := getSfntBuffer()
	if buffer == nil {
		panic("unexpected nil")
	}
	releaseSfntBuffer(buffer)

	// test unexsitent property
	value, err = GetProperty(testFontA, 999)
	if err != ErrNotFound {
		t.Fatalf("GetProperty(testFontA, 999) error: %s", err)
	}
	if value != "" {
		t.Fatalf("GetProperty(nil, 999) value = \"%s\"", value)
	}

	name, err := GetName(testFontA)
	if err != nil {
		panic(err)
	}
	ident, err := GetIdentifier(testFontA)
	if err != nil {
		panic(err)
	}
	family, err := GetFamily(testFontA)
	if err != nil {
		panic(err)
	}
	if !strings.Contains(name, family) && !strings.Contains(ident, family) {
		t.Fatalf("expected font name (%s) or identifier (%s) to contain font family (%s)", name, ident, family)
	}
	subfamily, err := GetSubfamily(testFontA)
	if err != nil {
		panic(err)
	}
	if subfamily != StyleRegular {
		t.Fatalf("expected a Regular subfamily, but got %s", subfamily)
	}

	// buffer in use, properties must still be accessible
	buffer = getSfntBuffer()
	if buffer == nil {
		panic("failed to get shared sfntBuffer")
	}
	ident2, err := GetIdentifier(testFontA)
	if err != nil {
		panic(err)
	}
	if ident2 != ident {
		t.Fatalf("ident2 != ident")
	}
	releaseSfntBuffer(buffer)
}

func TestGetPreferredFamily(t *testing.T) {
	for _, font := range []*sfnt.Font{testFontA, testFontB} {
		family, err := GetFamily(font)
		if err != nil { t.Fatal(err) }
		preferred, err := GetPreferredFamily(font)
		if err != nil { t.Fatal(err) }
		if preferred == "" { t.Fatal("empty preferred family") }
		typographic, err := GetProperty(font, sfnt.NameIDTypographicFamily)
		if err == nil && typographic != "" {
			if preferred != typographic { t.Fatalf("expected %q, got %q", typographic, preferred) }
		} else if preferred != family {
			t.Fatalf("expected fallback to %q, got %q", family, preferred)
		}
	}
}

func TestGetMissingRunes(t *testing.T) {
	var missing []rune
	var err error

	missing, err = GetMissingRunes(testFontA, " ")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(missing) != 0 {
		t.Fatalf("unexpected missing runes: %v", missing)
	}
	missing, err = GetMissingRunes(testFontA, "\u4E00")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(missing) != 1 {
		t.Fatal("unexpected rune \"\\u4E00\" not missing")
	}

	missing, err = GetMissingRunes(testFontA, " \u4E00 \u4E00\u4E00    ")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(missing) != 3 {
		t.Fatalf("unexpected len(missing) == %d", len(missing))
	}
}

func TestNormalizeStyle(t *testing.T) {
	tests := map[string]string{
		"": StyleRegular,
		"Regular": StyleRegular,
		"Book": StyleRegular,
		"Bold": StyleBold,
		"SemiBold": StyleBold,
		" italic ": StyleItalic,
		"Oblique": StyleItalic,
		"Bold Italic": StyleBoldItalic,
		"BOLD OBLIQUE": StyleBoldItalic,
		"Arial Bold Italic (TrueType)": StyleBoldItalic,
	}
	for in, want := range tests {
		if got := NormalizeStyle(in); got != want {
			t.Fatalf("NormalizeStyle(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestCanonicalFamily(t *testing.T) {
	tests := map[string]string{
		"Arial (TrueType)": "Arial",
		"Arial Bold (TrueType)": "Arial Bold",
		"MS Gothic & MS UI Gothic (TrueType)": "MS Gothic & MS UI Gothic",
		"Plain": "Plain",
		"(OpenType)": "",
	}
	for in, want := range tests {
		if got := CanonicalFamily(in); got != want {
			t.Fatalf("CanonicalFamily(%q) = %q, expected %q", in, got, want)
		}
	}
}
