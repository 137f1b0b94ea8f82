// Package jsondoc models a JSON document as a tagged value tree.
//
// Unlike decoding into interface{}, a Value keeps object members in the
// order they were written and keeps number literals exactly as they
// appeared, so parsing and re-formatting a document never reorders keys
// or rewrites numbers.
package jsondoc

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is one node of a JSON document. The zero Value is null.
//
// Copying a Value is shallow: containers share their backing storage.
// Use Clone to get an independent copy before mutating with Set or Append.
type Value struct {
	kind    Kind
	boolean bool
	text    string // number literal or string contents
	items   []Value
	members []Member
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: Bool, boolean: b} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// NumberValue wraps a number literal such as "42" or "1.5e3".
func NumberValue(literal string) (Value, error) {
	if !isNumberLiteral(literal) {
		return Value{}, fmt.Errorf("invalid number literal: %q", literal)
	}
	return Value{kind: Number, text: literal}, nil
}

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{kind: Number, text: strconv.FormatInt(n, 10)}
}

// ArrayValue builds an array from items.
func ArrayValue(items ...Value) Value {
	return Value{kind: Array, items: append([]Value{}, items...)}
}

// ObjectValue builds an object from members. Later duplicates of a key
// overwrite the earlier value but keep its position.
func ObjectValue(members ...Member) Value {
	v := Value{kind: Object, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.Set(m.Key, m.Value)
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean value, false for other kinds.
func (v Value) Bool() bool { return v.kind == Bool && v.boolean }

// Str returns the string contents, "" for other kinds.
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}
	return v.text
}

// Literal returns the number literal as written, "" for other kinds.
func (v Value) Literal() string {
	if v.kind != Number {
		return ""
	}
	return v.text
}

// Float64 converts a number to float64.
func (v Value) Float64() (float64, error) {
	if v.kind != Number {
		return 0, fmt.Errorf("expected number, got %s", v.kind)
	}
	return strconv.ParseFloat(v.text, 64)
}

// Int64 converts a number to int64. Fractional literals are truncated.
func (v Value) Int64() (int64, error) {
	if v.kind != Number {
		return 0, fmt.Errorf("expected number, got %s", v.kind)
	}
	if n, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Len returns the number of items or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return append([]Value{}, v.items...)
}

// Index returns the i-th array item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Members returns a copy of the object members in document order.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return append([]Member{}, v.members...)
}

// Keys returns the object keys in document order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the member named key in place, or appends it. Set on a
// non-object is a no-op.
func (v *Value) Set(key string, val Value) {
	if v.kind != Object {
		return
	}
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Append adds an item to an array. Append on a non-array is a no-op.
func (v *Value) Append(val Value) {
	if v.kind != Array {
		return
	}
	v.items = append(v.items, val)
}

// Clone returns a deep copy of v that shares no storage with it.
func Clone(v Value) Value {
	out := Value{kind: v.kind, boolean: v.boolean, text: v.text}
	switch v.kind {
	case Array:
		out.items = make([]Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = Clone(item)
		}
	case Object:
		out.members = make([]Member, len(v.members))
		for i, m := range v.members {
			out.members[i] = Member{Key: m.Key, Value: Clone(m.Value)}
		}
	}
	return out
}

// Equal reports whether a and b are the same document. Object member order
// is ignored and numbers compare by value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case String:
		return a.text == b.text
	case Number:
		if a.text == b.text {
			return true
		}
		af, errA := strconv.ParseFloat(a.text, 64)
		bf, errB := strconv.ParseFloat(b.text, 64)
		return errA == nil && errB == nil && af == bf
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// isNumberLiteral checks the JSON number grammar.
func isNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	if s[i] == '0' {
		i++
	} else if s[i] >= '1' && s[i] <= '9' {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	} else {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
