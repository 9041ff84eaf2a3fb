package format

import (
	"strconv"
	"strings"
)

type encoder struct {
	b      strings.Builder
	indent string
}

func encode(root *node, width int) string {
	e := &encoder{indent: strings.Repeat(" ", width)}
	e.value(root, 0)
	return e.b.String()
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.b.WriteString(e.indent)
	}
}

func (e *encoder) value(n *node, depth int) {
	switch n.kind {
	case kindNull:
		e.b.WriteString("null")
	case kindBool:
		e.b.WriteString(strconv.FormatBool(n.truth))
	case kindNumber:
		e.b.WriteString(n.text)
	case kindString:
		writeQuoted(&e.b, n.text)
	case kindArray:
		if len(n.items) == 0 {
			e.b.WriteString("[]")
			return
		}
		e.b.WriteByte('[')
		for i, child := range n.items {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(child, depth+1)
		}
		e.newline(depth)
		e.b.WriteByte(']')
	case kindObject:
		if len(n.items) == 0 {
			e.b.WriteString("{}")
			return
		}
		e.b.WriteByte('{')
		for i, child := range n.items {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.newline(depth + 1)
			writeQuoted(&e.b, n.keys[i])
			e.b.WriteByte(':')
			if e.indent != "" {
				e.b.WriteByte(' ')
			}
			e.value(child, depth+1)
		}
		e.newline(depth)
		e.b.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

// writeQuoted escapes only what JSON requires. encoding/json would also
// escape <, >, & and U+2028/U+2029, which changes user text on round-trip.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		b.WriteString(s[start:i])
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
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0xf])
		}
		start = i + 1
	}
	b.WriteString(s[start:])
	b.WriteByte('"')
}
