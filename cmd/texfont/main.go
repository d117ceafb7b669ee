// Command texfont generates bitmap font atlases (PNG pages plus an
// INI description) from TrueType and OpenType fonts.
package main

import "io"
import "os"
import "fmt"
import "errors"
import "context"
import "strings"
import "strconv"
import "log/slog"
import "os/signal"
import "path/filepath"

import "github.com/spf13/pflag"
import "golang.org/x/term"
import "gopkg.in/yaml.v3"

import "github.com/tinne26/texfont/atlas"
import "github.com/tinne26/texfont/charset"
import "github.com/tinne26/texfont/export"
import "github.com/tinne26/texfont/font"

// Exit code for runs interrupted with Ctrl-C.
const exitCancelled = 130

// Generation settings. Job files use the yaml keys, which match the
// flag names.
type settings struct {
	Font    string `yaml:"font"`
	Family  string `yaml:"family"`
	Style   string `yaml:"style"`
	Out     string `yaml:"out"`
	Size    int    `yaml:"size"`
	Padding int    `yaml:"padding"`

	Chars      string `yaml:"chars"`
	Preset     string `yaml:"preset"`
	Group      string `yaml:"group"`
	MaxChars   int    `yaml:"max-chars"`
	MaxTexture int    `yaml:"max-texture"`
	Vertical   bool   `yaml:"vertical"`
	Sharp      bool   `yaml:"sharp"`

	Stroke  bool              `yaml:"stroke"`
	Suffix  string            `yaml:"suffix"`
	NoRedir bool              `yaml:"no-redir"`
	Slots   map[string]string `yaml:"slots"`

	CenterOffset   int `yaml:"center-offset"`
	TopOffset      int `yaml:"top-offset"`
	BaselineOffset int `yaml:"baseline-offset"`
	LeftOverlap    int `yaml:"left-overlap"`
	RightOverlap   int `yaml:"right-overlap"`
	AdvanceExtra   int `yaml:"advance-extra"`
}

func defaultSettings() settings {
	return settings{ Size: 32, Padding: 2, MaxTexture: atlas.DefaultMaxTextureSize }
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		jobPath    string
		slotFlags  []string
		fontDirs   []string
		listFonts  bool
		listCodes  bool
		verbose    bool
		logJSON    bool
		showHelp   bool
	)
	config := defaultSettings()

	flags := pflag.NewFlagSet("texfont", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&config.Font, "font", "f", "", "Font file (add \"|index=N\" to pick a collection member)")
	flags.StringVar(&config.Family, "family", "", "Font family to look up in the installed fonts instead of --font")
	flags.StringVar(&config.Style, "style", "", "Style of --family (default: Regular or the first available)")
	flags.StringVarP(&config.Out, "out", "o", "", "Output base path, or an existing directory")
	flags.IntVarP(&config.Size, "size", "s", config.Size, "Font size in pixels")
	flags.IntVarP(&config.Padding, "padding", "p", config.Padding, "Extra pixels around each frame")
	flags.StringVarP(&config.Chars, "chars", "c", "", "Codepoints to include, like \"U+20-U+7E, 'é'\" (default: all in the font)")
	flags.StringVar(&config.Preset, "preset", "", "Character preset: numbers or plane2")
	flags.StringVar(&config.Group, "group", "", "Page group name (default: the output base name)")
	flags.IntVar(&config.MaxChars, "max-chars", 0, "Maximum characters per page (0 = no limit)")
	flags.IntVar(&config.MaxTexture, "max-texture", config.MaxTexture, "Maximum page width and height in pixels")
	flags.BoolVar(&config.Vertical, "vertical", false, "Rotate glyphs 90 degrees counterclockwise")
	flags.BoolVar(&config.Sharp, "sharp", false, "Disable antialiasing (for pixel art fonts)")
	flags.BoolVar(&config.Stroke, "stroke", false, "Also export stroke templates")
	flags.StringVar(&config.Suffix, "suffix", "", "Suffix appended to page bitmap names")
	flags.BoolVar(&config.NoRedir, "no-redir", false, "Don't write slot redirection files")
	flags.StringArrayVar(&slotFlags, "slot", nil, "Slot mode as \"<slot>=default|2x\" (repeatable)")
	flags.IntVar(&config.CenterOffset, "center-offset", 0, "Vertical centering offset")
	flags.IntVar(&config.TopOffset, "top-offset", 0, "Top metric offset")
	flags.IntVar(&config.BaselineOffset, "baseline-offset", 0, "Baseline metric offset")
	flags.IntVar(&config.LeftOverlap, "left-overlap", 0, "Extra pixels drawn left of each glyph")
	flags.IntVar(&config.RightOverlap, "right-overlap", 0, "Extra pixels drawn right of each glyph")
	flags.IntVar(&config.AdvanceExtra, "advance-extra", 0, "Extra advance pixels")
	flags.StringVar(&jobPath, "job", "", "YAML job file; flags given explicitly override its values")
	flags.StringArrayVar(&fontDirs, "font-dir", nil, "Font directory for --list-fonts and --family (default: system dirs)")
	flags.BoolVar(&listFonts, "list-fonts", false, "List font families and exit")
	flags.BoolVar(&listCodes, "list-codepoints", false, "List the codepoints of --font and exit")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug information")
	flags.BoolVar(&logJSON, "log-json", false, "Log as JSON")
	flags.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	err := flags.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) { return 0 }
		return 2
	}
	if showHelp {
		fmt.Fprintln(stderr, "Usage: texfont [flags] --font PATH --out BASE")
		flags.PrintDefaults()
		return 0
	}

	logger := newLogger(stderr, verbose, logJSON)
	if jobPath != "" {
		err = applyJob(flags, &config, jobPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if flags.Changed("slot") {
		config.Slots, err = parseSlots(slotFlags)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if listFonts { return runListFonts(stdout, stderr, fontDirs) }
	if config.Font == "" && config.Family != "" {
		config.Font, err = lookupFamily(fontDirs, config.Family, config.Style)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if listCodes { return runListCodepoints(stdout, stderr, config) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runGenerate(ctx, stdout, stderr, config, logger)
}

func newLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	options := &slog.HandlerOptions{ Level: slog.LevelWarn }
	if verbose { options.Level = slog.LevelDebug }
	if asJSON { return slog.New(slog.NewJSONHandler(w, options)) }
	return slog.New(slog.NewTextHandler(w, options))
}

// Loads the job file over the defaults and then reapplies the flags
// that were set explicitly. The flags must be bound to the fields of
// the given settings.
func applyJob(flags *pflag.FlagSet, config *settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil { return err }

	explicit := make(map[string]string)
	flags.Visit(func(flag *pflag.Flag) {
		if flag.Value.Type() == "stringArray" { return }
		explicit[flag.Name] = flag.Value.String()
	})

	*config = defaultSettings()
	err = yaml.Unmarshal(data, config)
	if err != nil { return fmt.Errorf("job file %s: %w", path, err) }
	for name, value := range explicit {
		err = flags.Set(name, value)
		if err != nil { return err }
	}
	return nil
}

// Parses "<slot>=<mode>" values into a mode map. Slot names are
// matched case-insensitively against [export.Slots].
func parseSlots(values []string) (map[string]string, error) {
	modes := make(map[string]string, len(values))
	for _, value := range values {
		name, mode, found := strings.Cut(value, "=")
		if !found { return nil, fmt.Errorf("invalid slot %q: expected <slot>=<mode>", value) }
		slot, ok := canonicalSlot(strings.TrimSpace(name))
		if !ok { return nil, fmt.Errorf("unknown slot %q", name) }
		mode = strings.ToLower(strings.TrimSpace(mode))
		if mode != export.ModeDefault && mode != export.Mode2x {
			return nil, fmt.Errorf("invalid mode %q for slot %s", mode, slot)
		}
		modes[slot] = mode
	}
	return modes, nil
}

func canonicalSlot(name string) (string, bool) {
	for _, slot := range export.Slots {
		if strings.EqualFold(slot, name) { return slot, true }
	}
	return "", false
}

func runListFonts(stdout, stderr io.Writer, dirs []string) int {
	registry, err := font.Enumerate(dirs, nil, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_ = registry.EachFamily(func(family *font.Family) error {
		fmt.Fprintf(stdout, "%s: %s\n", family.Name(), strings.Join(family.Styles(), ", "))
		return nil
	})
	return 0
}

func lookupFamily(dirs []string, name, style string) (string, error) {
	registry, err := font.Enumerate(dirs, nil, nil)
	if err != nil { return "", err }
	if !registry.HasFamily(name) { return "", fmt.Errorf("font family %q not found", name) }
	family := registry.GetFamily(name)
	if style == "" {
		_, spec := family.Default()
		return spec, nil
	}
	spec, found := family.Path(style)
	if !found { return "", fmt.Errorf("font family %q has no %q style", name, style) }
	return spec, nil
}

func runListCodepoints(stdout, stderr io.Writer, config settings) int {
	codepoints, err := resolveCodepoints(config)
	if err == nil && codepoints == nil {
		codepoints, err = font.Codepoints(config.Font)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	codepoints, _ = charset.Filter(codepoints, config.Preset)
	for _, codePoint := range codepoints {
		fmt.Fprintf(stdout, "%s %c\n", charset.FormatCodepoint(codePoint), codePoint)
	}
	return 0
}

// Returns the codepoints selected with --chars, or nil if the whole
// font is to be used.
func resolveCodepoints(config settings) ([]rune, error) {
	if config.Font == "" { return nil, errors.New("no font given (use --font or --family)") }
	if !charset.IsPreset(config.Preset) {
		return nil, &atlas.ValidationError{ Field: "preset", Value: config.Preset, Reason: "unknown preset" }
	}
	if strings.TrimSpace(config.Chars) == "" { return nil, nil }
	codepoints, err := charset.ParseExpr(config.Chars)
	if err != nil { return nil, err }
	return charset.Printable(codepoints), nil
}

// Maximum number of missing codepoints listed by [warnMissing]().
const maxListedMissing = 8

// Warns about requested codepoints the font can't represent. Those
// are still laid out, but drawn with the font's notdef glyph.
func warnMissing(stderr io.Writer, fontSpec string, codepoints []rune) {
	parsed, _, err := font.ParseFromPath(fontSpec)
	if err != nil { return } // reported by the generation itself
	missing, err := font.GetMissingRunes(parsed, string(codepoints))
	if err != nil || len(missing) == 0 { return }

	listed := make([]string, 0, maxListedMissing)
	for _, codePoint := range missing[:min(len(missing), maxListedMissing)] {
		listed = append(listed, charset.FormatCodepoint(codePoint))
	}
	more := ""
	if len(missing) > maxListedMissing { more = ", ..." }
	fmt.Fprintf(stderr, "Warning: %d codepoints not in the font, drawn as notdef: %s%s\n",
		len(missing), strings.Join(listed, ", "), more)
}

func runGenerate(ctx context.Context, stdout, stderr io.Writer, config settings, logger *slog.Logger) int {
	codepoints, err := resolveCodepoints(config)
	if err == nil && config.Out == "" { err = errors.New("no output given (use --out)") }
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if codepoints != nil { warnMissing(stderr, config.Font, codepoints) }

	options := export.Options{
		Config: atlas.Config{
			FontPath: config.Font,
			SizePx: config.Size,
			Padding: config.Padding,
			GroupName: config.Group,
			Codepoints: codepoints,
			Preset: config.Preset,
			MaxTextureSize: config.MaxTexture,
			MaxCharsPerPage: config.MaxChars,
			Vertical: config.Vertical,
			Sharp: config.Sharp,
			Tunables: atlas.Tunables{
				CenterOffset: config.CenterOffset,
				TopOffset: config.TopOffset,
				BaselineOffset: config.BaselineOffset,
				LeftOverlap: config.LeftOverlap,
				RightOverlap: config.RightOverlap,
				AdvanceExtra: config.AdvanceExtra,
			},
			Logger: logger,
		},
		BasePath: basePath(config),
		StrokeTemplates: config.Stroke,
		BitmapSuffix: config.Suffix,
		WriteRedir: !config.NoRedir,
		RedirModes: config.Slots,
	}
	progress := newProgressPrinter(stderr)
	if progress != nil { options.Config.Progress = progress.update }

	result, err := export.GenerateAndSave(ctx, options)
	if progress != nil { progress.finish() }
	if err != nil {
		if errors.Is(err, atlas.ErrCancelled) { return exitCancelled }
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if result.Result.FellBack {
		fmt.Fprintf(stderr, "Warning: generated with reset offsets after error: %v\n", result.Result.Cause)
	}
	fmt.Fprintln(stdout, result.INIPath)
	if result.DoubleINIPath != "" { fmt.Fprintln(stdout, result.DoubleINIPath) }
	return 0
}

// Returns the output base path. When --out is an existing directory,
// the base is named after the font family and size inside it.
func basePath(config settings) string {
	info, err := os.Stat(config.Out)
	if err != nil || !info.IsDir() { return config.Out }

	family := config.Family
	if family == "" {
		parsed, _, err := font.ParseFromPath(config.Font)
		if err == nil { family, _ = font.GetPreferredFamily(parsed) }
	}
	family = sanitizeName(strings.TrimPrefix(strings.TrimSpace(family), "@"))
	if family == "" { family = "Font" }
	return filepath.Join(config.Out, "_" + family + " " + strconv.Itoa(config.Size) + "px")
}

// Replaces characters that aren't allowed in file names with spaces.
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>:"/\|?*`, r) { return ' ' }
		return r
	}, name)
	return strings.TrimSpace(name)
}

// Prints the generation progress in place. Only used on terminals.
type progressPrinter struct {
	out  io.Writer
	last int
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	file, isFile := w.(*os.File)
	if !isFile || !term.IsTerminal(int(file.Fd())) { return nil }
	return &progressPrinter{ out: w, last: -1 }
}

func (self *progressPrinter) update(done, total int) {
	percent := done*100/max(total, 1)
	if percent == self.last { return }
	self.last = percent
	fmt.Fprintf(self.out, "\rgenerating... %3d%%", percent)
}

func (self *progressPrinter) finish() {
	if self.last >= 0 { fmt.Fprintln(self.out) }
}
