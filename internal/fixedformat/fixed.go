// Package fixedformat holds the primitives shared by the StateMod and StateCU
// file codecs: positional field reads, whitespace tokenizing, fixed-width
// padding and free-format number output.
package fixedformat

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldType is the type a fixed-width field is parsed as.
type FieldType int

const (
	// String keeps the raw column text.
	String FieldType = iota
	// Int parses the trimmed column text as an integer.
	Int
	// Float parses the trimmed column text as a float.
	Float
	// Skip reads the columns without parsing them.
	Skip
)

// Field is one column range of a record line.
type Field struct {
	Type  FieldType
	Width int
}

// S, I, F and X build fields, in the spirit of FORTRAN a, i, f and x descriptors.
func S(width int) Field { return Field{Type: String, Width: width} }
func I(width int) Field { return Field{Type: Int, Width: width} }
func F(width int) Field { return Field{Type: Float, Width: width} }
func X(width int) Field { return Field{Type: Skip, Width: width} }

// Value is a parsed field. OK is false for numeric fields that were blank or
// malformed; callers leave the target value untouched in that case.
type Value struct {
	Text  string
	Float float64
	Int   int
	OK    bool
}

// Trimmed returns the field text without surrounding blanks.
func (v Value) Trimmed() string { return strings.TrimSpace(v.Text) }

// FixedRead splits a line into fields by column width. Columns past the end
// of a short line read as blank.
func FixedRead(line string, fields []Field) []Value {
	runes := []rune(line)
	out := make([]Value, len(fields))
	pos := 0
	for i, f := range fields {
		text := ""
		if pos < len(runes) {
			end := min(pos+f.Width, len(runes))
			text = string(runes[pos:end])
		}
		pos += f.Width
		out[i] = parseValue(f.Type, text)
	}
	return out
}

func parseValue(t FieldType, text string) Value {
	v := Value{Text: text}
	switch t {
	case String, Skip:
		v.OK = true
	case Int:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err == nil {
			v.Int = n
			v.Float = float64(n)
			v.OK = true
		}
	case Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil {
			v.Float = f
			v.OK = true
		}
	}
	return v
}

// FromColumn returns the line from a 0-based column, or "" past the end.
func FromColumn(line string, col int) string {
	runes := []rune(line)
	if col < 0 || col >= len(runes) {
		return ""
	}
	return string(runes[col:])
}

// Tokenize splits a line on whitespace. Text in double quotes is one token
// with the quotes removed, so "A B" C gives [A B] [C].
func Tokenize(line string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		started = false
	}
	for _, r := range line {
		switch {
		case r == '"':
			// Кавычка начинает или заканчивает токен
			if inQuote {
				inQuote = false
				flush()
			} else {
				flush()
				inQuote = true
				started = true
			}
		case unicode.IsSpace(r) && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return tokens
}

// LeftString pads or truncates s to exactly width runes, left-justified.
func LeftString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// RightString pads or truncates s to exactly width runes, right-justified.
// Truncation keeps the leading runes, as %8.8s does.
func RightString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	return strings.Repeat(" ", width-n) + s
}

// FormatFloatSeparated formats v with FormatFloat. When the text
// fills the width with no blank, precision is reduced one digit at a time
// until a blank appears, so adjacent free-format values stay separated.
// It reports false when even zero decimals leave no blank; the zero-decimal
// text is returned and the caller decides how to report it.
func FormatFloatSeparated(v float64, width, precision int) (string, bool) {
	if precision < 0 {
		precision = 0
	}
	var s string
	for p := precision; p >= 0; p-- {
		s = FormatFloat(v, width, p)
		if strings.ContainsRune(s, ' ') {
			return s, true
		}
	}
	return s, false
}

// TokenString left-justifies s in width runes for a whitespace-delimited
// record. Empty strings and strings with whitespace are truncated to
// width-2 and quoted so that Tokenize reads them back as one token.
func TokenString(s string, width int) string {
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		inner := strings.TrimRightFunc(LeftString(s, max(width-2, 0)), unicode.IsSpace)
		return LeftString(`"`+inner+`"`, width)
	}
	return LeftString(s, width)
}
