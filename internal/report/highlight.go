package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Token is a highlighted chunk of text.
type Token struct {
	Text  string
	Color string // #rrggbb, empty for default
}

// Tokens splits source into coloured tokens using the dracula style. Unknown
// languages come back as a single uncoloured token.
func Tokens(language, source string) []Token {
	lexer := lexers.Get(language)
	if lexer == nil {
		return []Token{{Text: source}}
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return []Token{{Text: source}}
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var out []Token
	for _, t := range iterator.Tokens() {
		out = append(out, Token{Text: t.Value, Color: tokenColor(style, t.Type)})
	}
	return out
}

// Highlight returns source with 24-bit ANSI colour escapes.
func Highlight(language, source string) string {
	var b strings.Builder
	for _, t := range Tokens(language, source) {
		if t.Color == "" {
			b.WriteString(t.Text)
			continue
		}
		r, g, bl, ok := parseHex(t.Color)
		if !ok {
			b.WriteString(t.Text)
			continue
		}
		// escapes must not span newlines or some pagers lose them
		lines := strings.Split(t.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, bl, line)
		}
	}
	return b.String()
}

func tokenColor(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}

func parseHex(s string) (r, g, b int, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), true
}
