package font

import "os"
import "errors"
import "runtime"
import "path/filepath"

// Returned by [Enumerate]() when the cancellation predicate fires.
// The registry returned along with it contains the fonts found up to
// that point.
var ErrCancelled = errors.New("font enumeration cancelled")

// A font entry found outside font files themselves, like the Windows
// font registry. Names are display names such as "Arial Bold (TrueType)".
type systemEntry struct {
	name string
	path string
}

// Returns the directories where the operating system keeps installed
// fonts. Only existing directories are returned.
func SystemFontDirs() []string {
	home, _ := os.UserHomeDir()
	var candidates []string
	switch runtime.GOOS {
	case "windows":
		candidates = append(candidates, filepath.Join(windowsDir(), "Fonts"))
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		candidates = append(candidates, "/System/Library/Fonts", "/Library/Fonts")
		if home != "" { candidates = append(candidates, filepath.Join(home, "Library", "Fonts")) }
	default:
		candidates = append(candidates, "/usr/share/fonts", "/usr/local/share/fonts")
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			candidates = append(candidates, filepath.Join(dataHome, "fonts"))
		} else if home != "" {
			candidates = append(candidates, filepath.Join(home, ".local", "share", "fonts"))
		}
		if home != "" { candidates = append(candidates, filepath.Join(home, ".fonts")) }
	}

	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() { dirs = append(dirs, dir) }
	}
	return dirs
}

// Builds a [Registry] from the font files in the given directories
// (walked recursively) and from the system font registry, if the
// platform has one. If dirs is nil, [SystemFontDirs]() is used.
//
// Font files are parsed first, as their name tables are the most
// reliable source of family and style names. System registry entries
// then fill in any family and style that wasn't found in the files.
//
// The progress function, if not nil, is called after each file with
// the number of files processed and the total. Panics inside it are
// recovered and ignored. The shouldCancel predicate, if not nil, is
// checked before each file; when it returns true, the partial registry
// is returned along with [ErrCancelled].
func Enumerate(dirs []string, progress func(done, total int), shouldCancel func() bool) (*Registry, error) {
	if dirs == nil { dirs = SystemFontDirs() }

	seen := make(map[string]bool)
	var paths []string
	for _, dir := range dirs {
		dirPaths, err := fontFilesIn(dir)
		if err != nil { continue }
		for _, path := range dirPaths {
			if seen[path] { continue }
			seen[path] = true
			paths = append(paths, path)
		}
	}

	registry := NewRegistry()
	total := len(paths)
	for i, path := range paths {
		if shouldCancel != nil && shouldCancel() { return registry, ErrCancelled }
		_, _, _ = registry.ParseFromPath(path)
		notifyProgress(progress, i + 1, total)
	}

	for _, entry := range systemEntries() {
		if shouldCancel != nil && shouldCancel() { return registry, ErrCancelled }
		if seen[entry.path] { continue }
		_ = registry.Add(CanonicalFamily(entry.name), NormalizeStyle(entry.name), entry.path)
	}
	return registry, nil
}

func notifyProgress(progress func(int, int), done, total int) {
	if progress == nil { return }
	defer func() { _ = recover() }()
	progress(done, total)
}

func windowsDir() string {
	if dir := os.Getenv("WINDIR"); dir != "" { return dir }
	return `C:\Windows`
}
