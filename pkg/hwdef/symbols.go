package hwdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tells which of the three symbol value shapes a Value holds.
type Kind int

const (
	// KindEmpty is a symbol defined with no value ("#define FOO").
	KindEmpty Kind = iota
	KindInt
	KindString
)

// Value is the value of a single define. The zero Value is empty.
type Value struct {
	Kind Kind
	Int  int64
	Str  string
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

// String returns a string Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Empty returns a present-but-empty Value.
func Empty() Value { return Value{} }

// IsEmpty reports whether the symbol was defined without a value.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Truthy mirrors how the header generator treats a value in a boolean
// context: empty, zero and the empty string are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.Int != 0
	case KindString:
		return v.Str != ""
	}
	return false
}

// Text returns the textual form of the value, "" when empty.
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindString:
		return v.Str
	}
	return ""
}

func (v Value) String() string {
	if v.Kind == KindEmpty {
		return "<empty>"
	}
	return v.Text()
}

// MarshalJSON encodes integers as numbers, strings as strings and empty
// values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case KindString:
		return json.Marshal(v.Str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Empty()
	case string:
		*v = String(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return fmt.Errorf("hwdef: non-integer value %s", t)
		}
		*v = Int(n)
	default:
		return fmt.Errorf("hwdef: unsupported value %s", string(data))
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindInt:
		return v.Int, nil
	case KindString:
		return v.Str, nil
	}
	return nil, nil
}

// SymbolTable maps define names to their values. A name missing from the
// map is undefined, which is different from a name mapped to an empty Value.
type SymbolTable map[string]Value

// Lookup returns the value of name and whether it is defined.
func (s SymbolTable) Lookup(name string) (Value, bool) {
	v, ok := s[name]
	return v, ok
}

// Has reports whether name is defined, with or without a value.
func (s SymbolTable) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Require returns the value of name or a *SymbolError wrapping
// ErrMissingSymbol.
func (s SymbolTable) Require(name string) (Value, error) {
	v, ok := s[name]
	if !ok {
		return Value{}, &SymbolError{Symbol: name, Err: ErrMissingSymbol}
	}
	return v, nil
}
