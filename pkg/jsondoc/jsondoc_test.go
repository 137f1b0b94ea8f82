package jsondoc

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple object",
			input: `{"a":1}`,
			want:  "{\n  \"a\": 1\n}",
		},
		{
			name:  "key order preserved",
			input: `{"zeta":1,"alpha":2,"mid":{"y":true,"x":null}}`,
			want:  "{\n  \"zeta\": 1,\n  \"alpha\": 2,\n  \"mid\": {\n    \"y\": true,\n    \"x\": null\n  }\n}",
		},
		{
			name:  "empty containers",
			input: `{"list":[],"obj":{}}`,
			want:  "{\n  \"list\": [],\n  \"obj\": {}\n}",
		},
		{
			name:  "nested array",
			input: `[1,[2,3],"x"]`,
			want:  "[\n  1,\n  [\n    2,\n    3\n  ],\n  \"x\"\n]",
		},
		{
			name:  "scalar document",
			input: `  "hello"  `,
			want:  `"hello"`,
		},
		{
			name:  "number literals kept",
			input: `[1.50, -0, 1e10, 12345678901234567890]`,
			want:  "[\n  1.50,\n  -0,\n  1e10,\n  12345678901234567890\n]",
		},
		{
			name:  "non-ascii and html characters not escaped",
			input: `{"name":"Grüße <b>&</b>"}`,
			want:  "{\n  \"name\": \"Grüße <b>&</b>\"\n}",
		},
		{
			name:  "control characters escaped",
			input: `"tab\there\u0001"`,
			want:  `"tab\there\u0001"`,
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"a":1,"b":2,"a":3}`,
			want:  "{\n  \"a\": 3,\n  \"b\": 2\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got := Format(v); got != tt.want {
				t.Errorf("Format() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		`{"server":{"host":"localhost","ports":[80,443],"tls":{"enabled":false}},"tags":[]}`,
		`[{"k":"v"},[],{},null,true,false,0.25]`,
		`"just a string"`,
	}

	for _, input := range inputs {
		once, err := FormatText(input)
		if err != nil {
			t.Fatalf("FormatText(%q) failed: %v", input, err)
		}
		twice, err := FormatText(once)
		if err != nil {
			t.Fatalf("FormatText(formatted) failed: %v", err)
		}
		if once != twice {
			t.Errorf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", once, twice)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"missing value", `{"a":}`, 1},
		{"trailing comma", `{"a":1,}`, 1},
		{"unterminated", "{\n  \"a\": 1", 2},
		{"empty", ``, 1},
		{"trailing data", `{"a":1} {"b":2}`, 1},
		{"bare word", `hello`, 1},
		{"error on third line", "{\n  \"a\": 1,\n  \"b\": tru\n}", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, expected syntax error", tt.input)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if syntaxErr.Line != tt.wantLine {
				t.Errorf("expected error on line %d, got line %d (%v)", tt.wantLine, syntaxErr.Line, err)
			}
			if Valid(tt.input) {
				t.Errorf("Valid(%q) = true, want false", tt.input)
			}
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}

	if _, err := Parse(nested(maxDepth)); err != nil {
		t.Fatalf("Parse at max depth failed: %v", err)
	}

	_, err := Parse(nested(maxDepth + 1))
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if !strings.Contains(syntaxErr.Msg, "max depth") {
		t.Errorf("unexpected message %q", syntaxErr.Msg)
	}

	deepObject := strings.Repeat(`{"a":`, maxDepth+1) + "1" + strings.Repeat("}", maxDepth+1)
	if Valid(deepObject) {
		t.Error("expected over-deep object to be rejected")
	}
}

func TestCompact(t *testing.T) {
	v, err := Parse("{\n  \"a\": [1, 2],\n  \"b\": {}\n}")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := Compact(v), `{"a":[1,2],"b":{}}`; got != want {
		t.Errorf("Compact() = %s, want %s", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original, err := Parse(`{"a":{"b":[1,2]},"c":"x"}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	clone := Clone(original)

	if !Equal(original, clone) {
		t.Fatal("clone should equal original")
	}

	clone.Set("c", StringValue("changed"))
	inner, _ := clone.Get("a")
	inner.Set("b", NullValue())
	clone.Set("a", inner)

	if got := Compact(original); got != `{"a":{"b":[1,2]},"c":"x"}` {
		t.Errorf("mutating clone changed original: %s", got)
	}
}

func TestShallowCopySharesStorage(t *testing.T) {
	original := ObjectValue(Member{Key: "a", Value: IntValue(1)})
	alias := original
	alias.Set("a", IntValue(2))

	got, _ := original.Get("a")
	if got.Literal() != "2" {
		t.Errorf("expected plain assignment to alias storage, got a=%s", got.Literal())
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{`1.0`, `1`, true},
		{`[1,2]`, `[2,1]`, false},
		{`{"a":1}`, `{"a":1,"b":2}`, false},
		{`"1"`, `1`, false},
		{`null`, `null`, true},
	}

	for _, tt := range tests {
		a, err := Parse(tt.a)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.a, err)
		}
		b, err := Parse(tt.b)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.b, err)
		}
		if got := Equal(a, b); got != tt.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNumberValue(t *testing.T) {
	valid := []string{"0", "-1", "3.14", "1e-7", "2E+3"}
	for _, lit := range valid {
		if _, err := NumberValue(lit); err != nil {
			t.Errorf("NumberValue(%q) unexpected error: %v", lit, err)
		}
	}
	invalid := []string{"", "01", "1.", ".5", "1e", "+1", "NaN"}
	for _, lit := range invalid {
		if _, err := NumberValue(lit); err == nil {
			t.Errorf("NumberValue(%q) expected error", lit)
		}
	}

	n, _ := NumberValue("1722945600.25")
	f, err := n.Float64()
	if err != nil || f != 1722945600.25 {
		t.Errorf("Float64() = %v, %v", f, err)
	}
	i, err := n.Int64()
	if err != nil || i != 1722945600 {
		t.Errorf("Int64() = %v, %v", i, err)
	}
}

func TestJSONMarshalerRoundTrip(t *testing.T) {
	var payload struct {
		Doc Value `json:"doc"`
	}
	if err := json.Unmarshal([]byte(`{"doc":{"z":1,"a":[true]}}`), &payload); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if keys := strings.Join(payload.Doc.Keys(), ","); keys != "z,a" {
		t.Errorf("expected key order z,a got %s", keys)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"doc":{"z":1,"a":[true]}}` {
		t.Errorf("unexpected marshal output: %s", out)
	}
}
