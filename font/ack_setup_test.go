package font

// This file contains the shared test fixtures: the Go fonts, written
// to a temporary directory when tests need actual files.

import "os"
import "testing"
import "path/filepath"

import "golang.org/x/image/font/gofont/gobold"
import "golang.org/x/image/font/gofont/gobolditalic"
import "golang.org/x/image/font/gofont/goitalic"
import "golang.org/x/image/font/gofont/gomono"
import "golang.org/x/image/font/gofont/goregular"
import "golang.org/x/image/font/sfnt"

var testFontA *sfnt.Font
var testFontB *sfnt.Font

func init() {
	var err error
	testFontA, _, err = ParseFromBytes(goregular.TTF, 0)
	if err != nil { panic(err) }
	testFontB, _, err = ParseFromBytes(gomono.TTF, 0)
	if err != nil { panic(err) }
}

// Writes the given font files into a new temporary directory and
// returns the directory path.
func writeTestFonts(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		path := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil { t.Fatal(err) }
		err = os.WriteFile(path, data, 0o644)
		if err != nil { t.Fatal(err) }
	}
	return dir
}

func goFamilyFiles() map[string][]byte {
	return map[string][]byte{
		"Go-Regular.ttf": goregular.TTF,
		"Go-Bold.ttf": gobold.TTF,
		"nested/Go-Italic.ttf": goitalic.TTF,
		"nested/deeper/Go-Bold-Italic.TTF": gobolditalic.TTF,
		"Go-Mono.ttf": gomono.TTF,
		"readme.txt": []byte("not a font"),
	}
}

func doesNotPanic(function func()) (didNotPanic bool) {
	didNotPanic = true
	defer func() { didNotPanic = (recover() == nil) }()
	function()
	return
}
