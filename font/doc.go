// The font subpackage contains helper methods to parse fonts and
// obtain information from them (name, family, style, codepoints),
// alongside a [Registry] type that maps installed font families to
// their style variants.
//
// Font specs may point to a member of a font collection (.ttc) through
// the "path|index=N" convention. All the parsing functions in this
// package understand it.
package font
