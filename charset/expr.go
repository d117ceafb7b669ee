package charset

import "fmt"
import "slices"
import "strconv"
import "strings"
import "unicode"
import "unicode/utf8"

import "github.com/alecthomas/participle/v2"
import "github.com/alecthomas/participle/v2/lexer"

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Hex", Pattern: `(?:[Uu]\+|0[xX])[0-9A-Fa-f]+`},
	{Name: "Dec", Pattern: `\d+`},
	{Name: "Char", Pattern: `'(?:\\.[^']*|[^'\\])'`},
	{Name: "Range", Pattern: `\.\.|-`},
	{Name: "Comma", Pattern: `,`},
})

var exprParser = participle.MustBuild[expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

type expression struct {
	Items []*exprItem `parser:"@@ ( Comma @@ )* Comma?"`
}

type exprItem struct {
	Pos  lexer.Position
	From string `parser:"@(Hex | Dec | Char)"`
	To   string `parser:"( Range @(Hex | Dec | Char) )?"`
}

// Parses a codepoint set expression (see the package documentation)
// and returns the resulting codepoints sorted and without duplicates.
// Surrogate codepoints are silently skipped. An empty expression is
// valid and results in an empty set.
func ParseExpr(expr string) ([]rune, error) {
	if strings.TrimSpace(expr) == "" { return nil, nil }
	ast, err := exprParser.ParseString("", expr)
	if err != nil { return nil, fmt.Errorf("charset: %w", err) }

	var codepoints []rune
	for _, item := range ast.Items {
		from, err := parseCodepoint(item.From)
		if err != nil { return nil, fmt.Errorf("charset: %s: %w", item.Pos, err) }
		to := from
		if item.To != "" {
			to, err = parseCodepoint(item.To)
			if err != nil { return nil, fmt.Errorf("charset: %s: %w", item.Pos, err) }
			if to < from {
				return nil, fmt.Errorf("charset: %s: reversed range %s-%s", item.Pos, item.From, item.To)
			}
		}
		for codePoint := from; codePoint <= to; codePoint++ {
			if codePoint >= 0xD800 && codePoint <= 0xDFFF { continue }
			codepoints = append(codepoints, codePoint)
		}
	}

	slices.Sort(codepoints)
	return slices.Compact(codepoints), nil
}

// Formats a codepoint the way [ParseExpr]() prefers to read it.
func FormatCodepoint(codePoint rune) string {
	return fmt.Sprintf("U+%04X", codePoint)
}

func parseCodepoint(token string) (rune, error) {
	var value int64
	var err error
	switch {
	case strings.HasPrefix(token, "'"):
		str, err := strconv.Unquote(token)
		if err != nil { return 0, fmt.Errorf("invalid character literal %s", token) }
		codePoint, size := utf8.DecodeRuneInString(str)
		if size != len(str) || codePoint == utf8.RuneError {
			return 0, fmt.Errorf("invalid character literal %s", token)
		}
		return codePoint, nil
	case len(token) > 2 && (token[1] == '+' || token[1] == 'x' || token[1] == 'X'):
		value, err = strconv.ParseInt(token[2:], 16, 32)
	default:
		value, err = strconv.ParseInt(token, 10, 32)
	}
	if err != nil || value > unicode.MaxRune {
		return 0, fmt.Errorf("codepoint %s out of range", token)
	}
	return rune(value), nil
}
