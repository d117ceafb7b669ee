package export

import "os"
import "regexp"
import "strconv"
import "strings"
import "unicode"
import "log/slog"
import "path/filepath"

// Output slots a consumer theme can point at a font. Each slot gets
// its own redirection file.
var Slots = [4]string{ "Common Normal", "Common Large", "Menu Normal", "Menu Bold" }

// Slot modes. Slots without a mode, or with any mode other than
// [Mode2x], point to the base resolution.
const (
	ModeDefault = "default"
	Mode2x      = "2x"
)

var sizeSuffixRegexp = regexp.MustCompile(`^(.*)\s(\d+)px$`)

// Returns the base path with its "<N>px" suffix replaced by the given
// size. If the base name doesn't end with a size, " <size>px" is
// appended instead.
func BaseWithSize(base string, sizePx int) string {
	dir, name := filepath.Split(base)
	size := strconv.Itoa(sizePx) + "px"
	if match := sizeSuffixRegexp.FindStringSubmatch(name); match != nil {
		name = strings.TrimRightFunc(match[1], unicode.IsSpace) + " " + size
	} else {
		name = name + " " + size
	}
	return dir + name
}

// Returns whether the given mode selects the double resolution
// variant. Case-insensitive.
func Is2x(mode string) bool {
	return strings.EqualFold(strings.TrimSpace(mode), Mode2x)
}

// Returns whether any slot is configured for the double resolution
// variant.
func NeedsDouble(modes map[string]string) bool {
	for _, slot := range Slots {
		if Is2x(modes[slot]) { return true }
	}
	return false
}

// Writes one "<slot>.redir" file per slot into dir, containing the
// name of the base resolution variant or, for slots in [Mode2x], the
// double one. Write errors are logged at debug level and otherwise
// ignored.
func WriteRedirFiles(dir, baseName, doubleName string, modes map[string]string, logger *slog.Logger) {
	if logger == nil { logger = discardLogger() }
	for _, slot := range Slots {
		target := baseName
		if Is2x(modes[slot]) { target = doubleName }
		path := filepath.Join(dir, slot + ".redir")
		err := os.WriteFile(path, []byte(target + "\n"), 0o644)
		if err != nil {
			logger.Debug("redirection file not written", "path", path, "err", err)
		}
	}
}
