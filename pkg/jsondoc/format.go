package jsondoc

import (
	"strings"
	"unicode/utf8"
)

// Indent is the indentation unit used by Format.
const Indent = "  "

// Format serializes v as pretty-printed JSON with two-space indentation.
// Formatting the parse of Format's output yields the same text.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v, Indent, 0)
	return b.String()
}

// Compact serializes v without any insignificant whitespace.
func Compact(v Value) string {
	var b strings.Builder
	writeValue(&b, v, "", 0)
	return b.String()
}

// FormatText parses text and returns its canonical pretty-printed form.
func FormatText(text string) (string, error) {
	v, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(Compact(v)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func writeValue(b *strings.Builder, v Value, indent string, depth int) {
	switch v.kind {
	case Null:
		b.WriteString("null")
	case Bool:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(v.text)
	case String:
		writeString(b, v.text)
	case Array:
		if len(v.items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			writeValue(b, item, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte(']')
	case Object:
		if len(v.members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, depth+1)
			writeString(b, m.Key)
			b.WriteByte(':')
			if indent != "" {
				b.WriteByte(' ')
			}
			writeValue(b, m.Value, indent, depth+1)
		}
		newline(b, indent, depth)
		b.WriteByte('}')
	}
}

func newline(b *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}

const hex = "0123456789abcdef"

// writeString quotes s the way browsers' JSON.stringify does: only quotes,
// backslashes and control characters are escaped, everything else
// (including non-ASCII and HTML-significant characters) is written as is.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				if c < 0x20 {
					b.WriteString(`\u00`)
					b.WriteByte(hex[c>>4])
					b.WriteByte(hex[c&0xf])
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(`�`)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
}
