// The export subpackage writes generated atlas pages to disk in the
// layout bitmap-font consumers expect: one PNG per page, an INI file
// describing metrics and character widths, optional stroke templates
// and per-slot redirection files.
//
// Most programs only need [GenerateAndSave](), which runs the atlas
// generation (twice if some slot asks for the double resolution
// variant) and saves everything next to the given base path.
package export
