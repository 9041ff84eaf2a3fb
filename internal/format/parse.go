package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

// node is one parsed JSON value. Objects keep keys in the order the parser
// first met them; keys and items are parallel slices.
type node struct {
	kind  kind
	text  string // number literal or decoded string
	truth bool
	keys  []string
	items []*node
}

// SyntaxError locates a parse failure in the raw input.
type SyntaxError struct {
	Msg      string
	Position int // 0-based byte offset of the offending input
	Line     int // 1-based
	Column   int // 1-based, in runes
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d (position %d)", e.Msg, e.Line, e.Column, e.Position)
}

// maxDepth matches encoding/json's nesting limit.
const maxDepth = 10000

var errTooDeep = errors.New("exceeded max depth")

type parser struct {
	dec   *json.Decoder
	depth int
}

func parse(raw string) (*node, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	p := &parser{dec: dec}

	root, err := p.value()
	if err == nil {
		end := int(dec.InputOffset())
		if _, terr := dec.Token(); terr != io.EOF {
			err = errTrailing(raw, end)
		}
	}
	if err != nil {
		return nil, diagnose(raw, err)
	}
	return root, nil
}

func (p *parser) value() (*node, error) {
	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{', '[':
			p.depth++
			defer func() { p.depth-- }()
			if p.depth > maxDepth {
				return nil, errTooDeep
			}
			if t == '{' {
				return p.object()
			}
			return p.array()
		}
		return nil, fmt.Errorf("unexpected %q", rune(t))
	case json.Number:
		return &node{kind: kindNumber, text: t.String()}, nil
	case string:
		return &node{kind: kindString, text: t}, nil
	case bool:
		return &node{kind: kindBool, truth: t}, nil
	case nil:
		return &node{kind: kindNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %T", tok)
}

func (p *parser) object() (*node, error) {
	obj := &node{kind: kindObject}
	seen := map[string]int{}
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", tok)
		}
		child, err := p.value()
		if err != nil {
			return nil, err
		}
		// Last value wins but keeps the first key's position.
		if i, dup := seen[key]; dup {
			obj.items[i] = child
			continue
		}
		seen[key] = len(obj.keys)
		obj.keys = append(obj.keys, key)
		obj.items = append(obj.items, child)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *parser) array() (*node, error) {
	arr := &node{kind: kindArray}
	for p.dec.More() {
		child, err := p.value()
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, child)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

type trailingError struct{ pos int }

func (e *trailingError) Error() string { return "unexpected non-whitespace character after JSON value" }

func errTrailing(raw string, end int) error {
	pos := end
	for pos < len(raw) && strings.ContainsRune(" \t\r\n", rune(raw[pos])) {
		pos++
	}
	return &trailingError{pos: pos}
}

// diagnose converts a token-level failure into a SyntaxError with an absolute
// position. The decoder's own offsets are relative to the value it was
// reading, so the input is re-checked from the start to locate the fault.
func diagnose(raw string, cause error) error {
	var te *trailingError
	if errors.As(cause, &te) {
		return newSyntaxError(raw, te.Error(), te.pos)
	}
	var discard json.RawMessage
	var se *json.SyntaxError
	if err := json.Unmarshal([]byte(raw), &discard); errors.As(err, &se) {
		if strings.Contains(se.Error(), "end of JSON input") {
			return newSyntaxError(raw, se.Error(), len(raw))
		}
		return newSyntaxError(raw, se.Error(), int(se.Offset)-1)
	}
	if errors.Is(cause, io.EOF) || errors.Is(cause, io.ErrUnexpectedEOF) {
		return newSyntaxError(raw, "unexpected end of JSON input", len(raw))
	}
	return newSyntaxError(raw, cause.Error(), len(raw))
}

func newSyntaxError(raw, msg string, pos int) *SyntaxError {
	if pos < 0 {
		pos = 0
	}
	if pos > len(raw) {
		pos = len(raw)
	}
	prefix := raw[:pos]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	col := utf8.RuneCountInString(prefix[lineStart:]) + 1
	return &SyntaxError{Msg: msg, Position: pos, Line: line, Column: col}
}
