// Package sanitize repairs near-JSON text returned by text-generation
// providers into strictly parseable JSON text. Providers wrap objects in
// markdown fences and prose, leave literal control characters inside string
// values, and emit trailing commas; this package recovers the document
// without losing any visible string content.
package sanitize

import (
	"strings"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
)

// Sanitize repairs raw provider output into syntactically valid JSON text.
// It strips markdown formatting, slices to the outermost object, escapes or
// drops illegal control characters inside string literals, removes trailing
// commas, and strips comments. Returns ErrNoJSONBoundary when no object
// boundary exists; every other step is non-failing.
func Sanitize(raw string) (string, error) {
	s := stripFences(raw)

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return "", apperrors.ErrNoJSONBoundary
	}
	s = s[start : end+1]

	s = stripBackticks(s)
	s = escapeControlChars(s)
	s = stripComments(s)
	s = removeTrailingCommas(s)

	return s, nil
}

// stripFences removes code-fence markers anchored at line starts, taking
// fence info strings ("```json") with them. A valid JSON string literal
// cannot contain a raw newline, so nothing at a line start can be string
// content; anchoring to line starts keeps the fence strip lossless for
// string values.
func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "```") {
			kept = append(kept, line)
			continue
		}
		// Drop the marker and info string; anything from the first brace on
		// is document content that shares the fence line.
		rest := strings.TrimLeft(trimmed, "`")
		if idx := strings.IndexAny(rest, "{}"); idx != -1 {
			kept = append(kept, rest[idx:])
		}
	}

	return strings.Join(kept, "\n")
}

// stripBackticks removes inline backticks outside string literals. Backticks
// inside a string are visible content and pass through untouched.
func stripBackticks(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c != '`' {
			b.WriteByte(c)
		}
	}

	return b.String()
}

// escapeControlChars rewrites string literals so they contain no raw control
// characters. The scan tracks two pieces of state: whether the cursor is
// inside a string literal, and whether the previous character was an
// unconsumed backslash. A backslash escapes exactly the next character;
// that character always passes through untouched. Control characters outside
// string literals (inter-token whitespace) are left alone.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	inString := false
	escaped := false

	for _, r := range s {
		if inString && escaped {
			escaped = false
			b.WriteRune(r)
			continue
		}

		if inString {
			switch {
			case r == '\\':
				escaped = true
				b.WriteRune(r)
			case r == '"':
				inString = false
				b.WriteRune(r)
			case r == '\n':
				b.WriteString(`\n`)
			case r == '\r':
				b.WriteString(`\r`)
			case r == '\t':
				b.WriteString(`\t`)
			case r == '\f':
				b.WriteString(`\f`)
			case r == '\b':
				b.WriteString(`\b`)
			case isControl(r):
				// Unrepresentable control characters are dropped.
			default:
				b.WriteRune(r)
			}
			continue
		}

		if r == '"' {
			inString = true
		}
		b.WriteRune(r)
	}

	return b.String()
}

// StripControlChars is the wider second-pass repair used when the document
// still fails to parse after Sanitize: it removes every control character
// from the entire input, string context or not. Lossier than
// escapeControlChars, but JSON tolerates the removal of inter-token
// whitespace.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7F && r <= 0x9F)
}

// stripComments removes // line comments and /* */ block comments that
// appear outside string context. The generator is instructed not to emit
// these; this is a best-effort guard for when it does anyway.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == '/' && i+1 < len(s) {
			if s[i+1] == '/' {
				for i < len(s) && s[i] != '\n' {
					i++
				}
				if i < len(s) {
					b.WriteByte('\n')
				}
				continue
			}
			if s[i+1] == '*' {
				i += 2
				for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
					i++
				}
				i++ // past the closing '/'
				continue
			}
		}

		b.WriteByte(c)
	}

	return b.String()
}

// removeTrailingCommas drops commas immediately preceding a closing brace or
// bracket, outside string context.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && isWhitespace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}

		b.WriteByte(c)
	}

	return b.String()
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
