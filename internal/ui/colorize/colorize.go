// Package colorize highlights generated C guard code for terminal output.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// getCLexer returns a C lexer with fallbacks
func getCLexer() chroma.Lexer {
	for _, name := range []string{"c", "C", "cpp"} {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getGuardStyle returns the guard code style with fallbacks
func getGuardStyle() *chroma.Style {
	for _, name := range []string{"guard-dark", "dracula", "monokai"} {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	for _, name := range []string{"terminal16m", "terminal256"} {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Disabled reports whether GUARDGEN_NO_COLOR turns highlighting off.
func Disabled() bool {
	return os.Getenv("GUARDGEN_NO_COLOR") != ""
}

// ColorizeC highlights C source. On any failure the input is returned
// unchanged together with the error.
func ColorizeC(code string) (string, error) {
	if Disabled() {
		return code, nil
	}

	lexer := getCLexer()
	if lexer == nil {
		return code, nil
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getGuardStyle(), iterator); err != nil {
		return code, err
	}
	return buf.String(), nil
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\x1b':
			inEscape = true
		case inEscape:
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
