package atlas

import "io"
import "fmt"
import "image"
import "context"
import "strings"
import "unicode/utf8"

import "golang.org/x/image/draw"
import "golang.org/x/image/math/f64"

import "github.com/tinne26/texfont/cache"
import "github.com/tinne26/texfont/charset"
import "github.com/tinne26/texfont/font"
import "github.com/tinne26/texfont/glyph"
import "github.com/tinne26/texfont/mask"
import "github.com/tinne26/texfont/sizer"

// Integer pixel metrics for a generated atlas, relative to a page's
// coordinate frame.
type FontMetrics struct {
	Ascent       int
	Descent      int
	Baseline     int
	Top          int
	LineSpacing  int
	LeftOverlap  int
	RightOverlap int
	AdvanceExtra int
}

// A generated atlas page. Lines has one entry per row with the
// characters rendered on it, and Widths the advance of each rendered
// glyph in the same order.
type Page struct {
	Name    string
	NumCols int
	NumRows int
	FrameW  int
	FrameH  int
	Image   *image.RGBA
	Lines   []string
	Widths  []int
}

// Returns the number of characters rendered on the page.
func (self *Page) NumChars() int { return len(self.Widths) }

// Runs the whole layout pipeline once. Tunables are clamped, but the
// config is otherwise not validated (see [Validate]() and [SafeGenerate]()).
//
// Unexpected failures are returned as [*LayoutError], and cancellation
// as an error wrapping [ErrCancelled].
func Generate(ctx context.Context, config Config) (FontMetrics, []Page, error) {
	config = config.withDefaults()
	log := config.Logger

	face, err := config.OpenFace(config.FontPath, config.SizePx)
	if err != nil { return FontMetrics{}, nil, &LayoutError{ fmt.Errorf("opening font: %w", err) } }
	if closer, ok := face.(io.Closer); ok { defer closer.Close() }

	codepoints := config.Codepoints
	if codepoints == nil {
		codepoints, err = font.Codepoints(config.FontPath)
		if err != nil { return FontMetrics{}, nil, &LayoutError{ fmt.Errorf("reading codepoints: %w", err) } }
	}
	codepoints, suggestedGroup := charset.Filter(codepoints, config.Preset)
	groupName := config.GroupName
	if groupName == DefaultGroupName { groupName = suggestedGroup }

	tunables := ClampTunables(config.Tunables)
	baseline, top, lineSpacing := sizer.Measure(face.Sizer())
	log.Info("gen", "path", config.FontPath, "size", config.SizePx, "pad", config.Padding, "chars", len(codepoints))
	log.Info("tune", "center", tunables.CenterOffset, "top", tunables.TopOffset, "baseline", tunables.BaselineOffset)

	maxW, maxH := ComputeGlobalBounds(face, codepoints)
	frameW, frameH := FrameSize(maxW, config.Padding), FrameSize(maxH, config.Padding)
	cols, rowsPerPage := Grid(config, len(codepoints), frameW, frameH)
	capacity := cols*rowsPerPage
	if config.MaxCharsPerPage > 0 { capacity = config.MaxCharsPerPage }
	batches := Batches(codepoints, capacity)
	log.Debug("grid", "frame_w", frameW, "frame_h", frameH, "cols", cols, "rows_per_page", rowsPerPage, "pages", len(batches))

	run := pageRun{
		config: &config,
		face: face,
		rasterizer: newRasterizer(config.Sharp),
		frameW: frameW,
		frameH: frameH,
		cols: cols,
		offsetY: config.Padding/2 + tunables.CenterOffset - tunables.BaselineOffset,
	}
	pages := make([]Page, 0, len(batches))
	processed := 0
	for i, batch := range batches {
		if err := checkCancel(ctx, &config); err != nil { return FontMetrics{}, nil, err }
		page, err := run.layoutPage(ctx, PageName(groupName, i, len(batches)), batch)
		if err != nil { return FontMetrics{}, nil, err }
		pages = append(pages, page)

		processed += len(batch)
		notifyProgress(config.Progress, processed, len(codepoints))
		if err := checkCancel(ctx, &config); err != nil { return FontMetrics{}, nil, err }
	}

	metrics := FontMetrics{
		Ascent: baseline,
		Descent: lineSpacing - baseline,
		Baseline: baseline + config.Padding/2 + tunables.CenterOffset - tunables.BaselineOffset,
		Top: top + config.Padding/2 + tunables.CenterOffset - tunables.TopOffset,
		LineSpacing: lineSpacing,
		LeftOverlap: tunables.LeftOverlap,
		RightOverlap: tunables.RightOverlap,
		AdvanceExtra: tunables.AdvanceExtra,
	}
	return metrics, pages, nil
}

// State shared by all the pages of a run.
type pageRun struct {
	config *Config
	face MetricFace
	rasterizer mask.Rasterizer
	frameW, frameH int
	cols int
	offsetY int
}

func (self *pageRun) layoutPage(ctx context.Context, name string, batch []rune) (Page, error) {
	numRows := 1
	if len(batch) > 0 { numRows = (len(batch) + self.cols - 1)/self.cols }
	if self.config.FixedRows > 0 { numRows = self.config.FixedRows }

	width, height := self.cols*self.frameW, numRows*self.frameH
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return Page{}, &LayoutError{ fmt.Errorf("page %q canvas %dx%d exceeds %dpx", name, width, height, MaxCanvasSize) }
	}
	page := Page{
		Name: name,
		NumCols: self.cols,
		NumRows: numRows,
		FrameW: self.frameW,
		FrameH: self.frameH,
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		Lines: make([]string, 0, numRows),
		Widths: make([]int, 0, len(batch)),
	}

	i := 0
	var line strings.Builder
	for row := 0; row < numRows; row++ {
		if err := checkCancel(ctx, self.config); err != nil { return Page{}, err }
		line.Reset()
		for col := 0; col < self.cols && i < len(batch); col++ {
			codePoint := batch[i]
			i += 1
			if !utf8.ValidRune(codePoint) { continue } // slot consumed, nothing drawn

			bitmap := self.render(codePoint)
			img, advance, w := bitmap.Image, bitmap.WidthAdv, bitmap.WidthAdv
			if self.config.Vertical {
				img = rotateCCW(img)
				advance, w = bitmap.BBoxH, img.Rect.Dx()
			}
			page.Widths = append(page.Widths, advance)
			line.WriteRune(codePoint)

			offsetX := int(float64(self.frameW)/2.0 - float64(w)/2.0)
			origin := image.Pt(col*self.frameW + offsetX, row*self.frameH + self.offsetY)
			draw.Draw(page.Image, img.Rect.Add(origin), img, image.Point{}, draw.Over)
		}
		page.Lines = append(page.Lines, line.String())
	}
	return page, nil
}

func (self *pageRun) render(codePoint rune) *glyph.CharBitmap {
	var key cache.Key
	if self.config.Cache != nil {
		key = cache.MakeKey(cacheFontKey(self.config), self.config.SizePx, codePoint)
		if bitmap, found := self.config.Cache.Get(key); found { return bitmap }
	}

	bitmap := glyph.RenderWith(self.face, codePoint, self.rasterizer)
	if bitmap.Degraded() {
		self.config.Logger.Debug("degraded glyph", "codepoint", charset.FormatCodepoint(codePoint),
			"advance", bitmap.AdvanceTier, "bounds", bitmap.BoundsTier, "draw", bitmap.DrawTier)
	}
	if self.config.Cache != nil { self.config.Cache.Pass(key, &bitmap) }
	return &bitmap
}

func newRasterizer(sharp bool) mask.Rasterizer {
	if sharp { return &mask.SharpRasterizer{} }
	return &mask.DefaultRasterizer{}
}

// Sharp and smooth bitmaps of the same font can't share cache entries.
func cacheFontKey(config *Config) string {
	if config.Sharp { return config.FontPath + "#sharp" }
	return config.FontPath
}

// Rotates the image 90 degrees counter-clockwise.
func rotateCCW(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	// maps source (x, y) to destination (y, w - x)
	transform := f64.Aff3{0, 1, 0, -1, 0, float64(w)}
	draw.NearestNeighbor.Transform(dst, transform, src, src.Rect, draw.Src, nil)
	return dst
}

func checkCancel(ctx context.Context, config *Config) error {
	if err := ctx.Err(); err != nil { return fmt.Errorf("%w: %w", ErrCancelled, err) }
	if config.ShouldCancel != nil && config.ShouldCancel() { return ErrCancelled }
	return nil
}

func notifyProgress(progress func(int, int), done, total int) {
	if progress == nil { return }
	defer func() { _ = recover() }()
	progress(done, total)
}
