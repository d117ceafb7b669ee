package atlas

import "os"
import "testing"
import "path/filepath"

import "golang.org/x/image/font/gofont/goregular"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/texfont/sizer"

// Writes goregular to a temporary directory and returns its path.
func testFontPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	err := os.WriteFile(path, goregular.TTF, 0o644)
	if err != nil { t.Fatal(err) }
	return path
}

type fakeSizer struct { ascent, descent int }
func (self *fakeSizer) Ascent() int { return self.ascent }
func (self *fakeSizer) Descent() int { return self.descent }
func (self *fakeSizer) LineSpacing() int { return self.ascent + self.descent }
func (self *fakeSizer) NotifyChange(*sfnt.Font, *sfnt.Buffer, fixed.Int26_6) error { return nil }

// Draws every character as a 5x10 rectangle standing on the baseline,
// one pixel after the pen, with an advance of 8.
type fakeFace struct {
	sizer fakeSizer
	outlines int
}

func newFakeFace() *fakeFace {
	return &fakeFace{ sizer: fakeSizer{ ascent: 12, descent: 4 } }
}

var fakeRect = fixed.R(1, -10, 6, 0)

func (self *fakeFace) Sizer() sizer.Sizer { return &self.sizer }
func (self *fakeFace) SizePx() int { return 16 }
func (self *fakeFace) Ascent() int { return self.sizer.ascent }
func (self *fakeFace) Advance(rune) (fixed.Int26_6, error) { return fixed.I(8), nil }
func (self *fakeFace) Bounds(rune) (fixed.Rectangle26_6, error) { return fakeRect, nil }
func (self *fakeFace) Extent(rune) (int, int, error) { return 8, 16, nil }
func (self *fakeFace) Outline(rune) (sfnt.Segments, error) {
	self.outlines += 1
	min, max := fakeRect.Min, fakeRect.Max
	return sfnt.Segments{
		{ Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{min} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{{X: max.X, Y: min.Y}} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{max} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{{X: min.X, Y: max.Y}} },
		{ Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{min} },
	}, nil
}

// Returns a config that uses the given fake face.
func fakeConfig(t *testing.T, face *fakeFace, codepoints []rune) Config {
	return Config{
		FontPath: testFontPath(t),
		SizePx: 16,
		Codepoints: codepoints,
		OpenFace: func(string, int) (MetricFace, error) { return face, nil },
	}
}
