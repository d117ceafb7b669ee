package atlas

import "io"
import "log/slog"

import "github.com/tinne26/texfont/cache"
import "github.com/tinne26/texfont/charset"
import "github.com/tinne26/texfont/font"
import "github.com/tinne26/texfont/glyph"
import "github.com/tinne26/texfont/sizer"

// Default values applied to zero [Config] fields.
const (
	DefaultGroupName      = charset.DefaultGroup
	DefaultMaxTextureSize = 4096
)

// Page canvases can't exceed this size in either axis.
const MaxCanvasSize = 32768

// Small integer adjustments applied on top of the measured metrics.
// See [ClampTunables]() for their valid ranges.
type Tunables struct {
	CenterOffset   int // shifts glyphs and metrics down
	TopOffset      int // shifts the reported top up
	BaselineOffset int // shifts glyphs and the reported baseline up
	LeftOverlap    int
	RightOverlap   int
	AdvanceExtra   int
}

// Returns the tunables clamped to their valid ranges: offsets to
// [-100, 100], overlaps to [0, 64] and the extra advance to [0, 128].
func ClampTunables(tunables Tunables) Tunables {
	return Tunables{
		CenterOffset: clamp(tunables.CenterOffset, -100, 100),
		TopOffset: clamp(tunables.TopOffset, -100, 100),
		BaselineOffset: clamp(tunables.BaselineOffset, -100, 100),
		LeftOverlap: clamp(tunables.LeftOverlap, 0, 64),
		RightOverlap: clamp(tunables.RightOverlap, 0, 64),
		AdvanceExtra: clamp(tunables.AdvanceExtra, 0, 128),
	}
}

// A font that can also report its vertical metrics. [glyph.SfntFace]
// satisfies this interface.
type MetricFace interface {
	glyph.Face
	Sizer() sizer.Sizer
}

// The parameters of a generation run. Configs are passed by value and
// never modified by the package. Zero values for optional fields mean
// "not set".
type Config struct {
	FontPath string // may include a "|index=N" suffix
	SizePx   int
	Padding  int

	// Page group name. If left as "main" (or empty) and a preset
	// applies, the preset's canonical group name is used instead.
	GroupName string

	// Codepoints to include, in order. If nil, the font's full
	// character map is used.
	Codepoints []rune
	Preset     string

	MaxTextureSize  int
	MaxCharsPerPage int
	FixedCols       int
	FixedRows       int
	Vertical        bool

	// Quantizes glyph coverage to fully opaque or transparent pixels
	// (see [mask.SharpRasterizer]).
	Sharp bool

	Tunables Tunables

	// Called after each page with the cumulative number of glyphs
	// processed and the total. Panics are recovered and ignored.
	Progress func(done, total int)

	// Polled before each page row and at page boundaries.
	ShouldCancel func() bool

	// Optional. Bitmaps are looked up and stored here when set.
	Cache *cache.BitmapCache

	// Optional. Opens the font at the requested size. Defaults to
	// [glyph.Open]().
	OpenFace func(fontPath string, sizePx int) (MetricFace, error)

	// Optional. Defaults to discarding all logs.
	Logger *slog.Logger
}

func (self Config) withDefaults() Config {
	if self.GroupName == "" { self.GroupName = DefaultGroupName }
	if self.MaxTextureSize == 0 { self.MaxTextureSize = DefaultMaxTextureSize }
	if self.OpenFace == nil { self.OpenFace = openSfntFace }
	if self.Logger == nil { self.Logger = slog.New(slog.NewTextHandler(io.Discard, nil)) }
	return self
}

func openSfntFace(fontPath string, sizePx int) (MetricFace, error) {
	face, err := glyph.Open(fontPath, sizePx)
	if err != nil { return nil, err }
	return face, nil
}

// Checks the configuration for bad input. The returned error, if any,
// is a [*ValidationError].
func Validate(config Config) error {
	if config.FontPath == "" || !font.Exists(config.FontPath) {
		return &ValidationError{ Field: "FontPath", Value: config.FontPath, Reason: "font not found" }
	}
	if config.SizePx <= 0 {
		return &ValidationError{ Field: "SizePx", Value: config.SizePx, Reason: "must be > 0" }
	}
	if config.Padding < 0 {
		return &ValidationError{ Field: "Padding", Value: config.Padding, Reason: "must be >= 0" }
	}
	if config.MaxTextureSize < 0 {
		return &ValidationError{ Field: "MaxTextureSize", Value: config.MaxTextureSize, Reason: "must be >= 0" }
	}
	if config.MaxCharsPerPage < 0 {
		return &ValidationError{ Field: "MaxCharsPerPage", Value: config.MaxCharsPerPage, Reason: "must be >= 0" }
	}
	if config.FixedCols < 0 || config.FixedRows < 0 {
		return &ValidationError{ Field: "FixedCols/FixedRows", Value: [2]int{config.FixedCols, config.FixedRows}, Reason: "must be >= 0" }
	}
	return nil
}

func clamp(value, low, high int) int {
	return min(max(value, low), high)
}
