package export

import "io"
import "fmt"
import "context"
import "log/slog"
import "path/filepath"

import "github.com/tinne26/texfont/atlas"
import "github.com/tinne26/texfont/font"

// Parameters for [GenerateAndSave]().
type Options struct {
	// Generation parameters. If Config.GroupName is empty, the base
	// name of BasePath is used as the group name. Fixed columns and
	// rows are overridden for the double resolution run.
	Config atlas.Config

	// Output path without extension, like "fonts/_Arial 16px". Page
	// bitmaps and the INI file are written next to it.
	BasePath string

	StrokeTemplates bool
	BitmapSuffix    string

	// Redirection files are only written (and the double resolution
	// variant only generated) if WriteRedir is set. Keys are the
	// names in [Slots], values [ModeDefault] or [Mode2x].
	WriteRedir bool
	RedirModes map[string]string
}

// The outcome of [GenerateAndSave]().
type SaveResult struct {
	INIPath string
	Result  atlas.Result

	// Only set when the double resolution variant was generated.
	DoubleINIPath string
	Double        *atlas.Result
}

// Generates the atlas described by the options and saves its pages,
// INI file and stroke templates. When redirection files are enabled
// and some slot is in [Mode2x], a second run at twice the size is
// made with the grid shape of the first run, so every character lands
// in the same cell at both resolutions.
func GenerateAndSave(ctx context.Context, options Options) (SaveResult, error) {
	config := options.Config
	logger := config.Logger
	if logger == nil { logger = discardLogger() }
	if options.BasePath == "" {
		return SaveResult{}, &atlas.ValidationError{ Field: "base path", Value: "", Reason: "must not be empty" }
	}
	if config.GroupName == "" {
		config.GroupName = filepath.Base(options.BasePath)
	}

	// resolve the codepoints once so both runs see the same set
	// (failures are left for the generation run to report)
	if config.Codepoints == nil && font.Exists(config.FontPath) {
		codepoints, err := font.Codepoints(config.FontPath)
		if err == nil { config.Codepoints = codepoints }
	}

	var out SaveResult
	result, err := atlas.SafeGenerate(ctx, config)
	if err != nil { return out, err }
	out.Result = result
	out.INIPath, err = SavePagesAndINI(options.BasePath, result.Metrics, result.Pages, options.StrokeTemplates, options.BitmapSuffix)
	if err != nil { return out, err }
	logger.Info("saved", "ini", out.INIPath, "pages", len(result.Pages))

	if !options.WriteRedir { return out, nil }
	doubleBase := BaseWithSize(options.BasePath, config.SizePx*2)
	if NeedsDouble(options.RedirModes) {
		double := config
		double.SizePx = config.SizePx*2
		double.FixedCols, double.FixedRows = 0, 0
		if len(result.Pages) > 0 {
			double.FixedCols = result.Pages[0].NumCols
			double.FixedRows = result.Pages[0].NumRows
		}
		doubleResult, err := atlas.SafeGenerate(ctx, double)
		if err != nil { return out, fmt.Errorf("double resolution run: %w", err) }
		out.Double = &doubleResult
		out.DoubleINIPath, err = SavePagesAndINI(doubleBase, doubleResult.Metrics, doubleResult.Pages, options.StrokeTemplates, options.BitmapSuffix)
		if err != nil { return out, err }
		logger.Info("saved", "ini", out.DoubleINIPath, "pages", len(doubleResult.Pages))
	}

	dir := filepath.Dir(options.BasePath)
	WriteRedirFiles(dir, filepath.Base(options.BasePath), filepath.Base(doubleBase), options.RedirModes, logger)
	return out, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
