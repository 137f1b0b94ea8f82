package jsondoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SyntaxError describes why a text is not a JSON document.
type SyntaxError struct {
	Msg    string
	Offset int64 // byte offset into the input
	Line   int   // 1-based
	Column int   // 1-based, in bytes
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", e.Msg, e.Line, e.Column)
	}
	return e.Msg
}

// maxDepth caps nesting, matching encoding/json.
const maxDepth = 10000

var errTooDeep = fmt.Errorf("exceeded max depth of %d", maxDepth)

// Parse reads exactly one JSON document from text.
func Parse(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, syntaxError(text, dec, err)
	}
	v, err := parseValue(dec, tok, 0)
	if err != nil {
		return Value{}, syntaxError(text, dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, syntaxError(text, dec, err)
	}
	return v, nil
}

// Valid reports whether text is a single JSON document.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

func parseValue(dec *json.Decoder, tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return Value{kind: Number, text: t.String()}, nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		if depth >= maxDepth {
			return Value{}, errTooDeep
		}
		switch t {
		case '{':
			return parseObject(dec, depth+1)
		case '[':
			return parseArray(dec, depth+1)
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder, depth int) (Value, error) {
	obj := Value{kind: Object, members: []Member{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		val, err := parseValue(dec, valTok, depth)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) (Value, error) {
	arr := Value{kind: Array, items: []Value{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		item, err := parseValue(dec, tok, depth)
		if err != nil {
			return Value{}, err
		}
		arr.items = append(arr.items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Value{}, err
	}
	return arr, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func syntaxError(text string, dec *json.Decoder, err error) *SyntaxError {
	// InputOffset points at the start of the offending token; the offset
	// carried by json.SyntaxError excludes delimiters consumed by Token.
	offset := dec.InputOffset()
	msg := err.Error()

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of JSON input"
		offset = int64(len(text))
	}

	line, col := position(text, offset)
	return &SyntaxError{Msg: msg, Offset: offset, Line: line, Column: col}
}

func position(text string, offset int64) (line, col int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	line, col = 1, 1
	for i := int64(0); i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
