package export

import "os"
import "testing"
import "path/filepath"

import "golang.org/x/image/font/gofont/goregular"

// Writes goregular to a temporary directory and returns its path.
func testFontPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	err := os.WriteFile(path, goregular.TTF, 0o644)
	if err != nil { t.Fatal(err) }
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil { t.Fatal(err) }
	return string(data)
}
