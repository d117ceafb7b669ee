//go:build !windows

package font

// Only Windows keeps a font registry besides the font directories.
func systemEntries() []systemEntry { return nil }
