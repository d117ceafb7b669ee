//go:build windows

package font

import "path/filepath"

import "golang.org/x/sys/windows/registry"

var systemFontKeys = []string{
	`SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`,
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Fonts`,
}

// Reads the installed fonts listed in the Windows registry. Relative
// paths are resolved against the Windows fonts directory, and entries
// pointing to missing or unsupported files are dropped.
func systemEntries() []systemEntry {
	var entries []systemEntry
	for _, subkey := range systemFontKeys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, subkey, registry.QUERY_VALUE)
		if err != nil { continue }
		names, err := key.ReadValueNames(0)
		if err != nil {
			key.Close()
			continue
		}
		for _, name := range names {
			value, _, err := key.GetStringValue(name)
			if err != nil || value == "" { continue }
			path := value
			if !filepath.IsAbs(path) {
				path = filepath.Join(windowsDir(), "Fonts", value)
			}
			if !hasValidFontExtension(path) || !Exists(path) { continue }
			entries = append(entries, systemEntry{ name: name, path: path })
		}
		key.Close()
	}
	return entries
}
