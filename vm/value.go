package vm

import (
	"errors"
	"strconv"
)

// ValueKind is the kind of a machine value.
type ValueKind int

const (
	KIND_INT  = ValueKind(0)
	KIND_TEXT = ValueKind(1)
)

// Value is a machine value: a 64-bit signed integer or immutable text.
// The zero Value is the integer 0, which is what unwritten registers
// and memory slots read as.
type Value struct {
	Kind ValueKind
	Int  int64
	Text string
}

// IntValue returns an integer value.
func IntValue(v int64) Value {
	return Value{Kind: KIND_INT, Int: v}
}

// TextValue returns a text value.
func TextValue(s string) Value {
	return Value{Kind: KIND_TEXT, Text: s}
}

// asInts extracts both operands as integers, or fails with a type
// mismatch naming the first non-integer value.
func asInts(a, b Value) (av, bv int64, err error) {
	if a.Kind != KIND_INT {
		err = errors.Join(ErrTypeMismatch, ErrValueNotInt(a))
		return
	}
	if b.Kind != KIND_INT {
		err = errors.Join(ErrTypeMismatch, ErrValueNotInt(b))
		return
	}
	av, bv = a.Int, b.Int
	return
}

// Add returns the integer sum of two values.
func (v Value) Add(other Value) (out Value, err error) {
	av, bv, err := asInts(v, other)
	if err != nil {
		return
	}
	out = IntValue(av + bv)
	return
}

// Sub returns the integer difference of two values.
func (v Value) Sub(other Value) (out Value, err error) {
	av, bv, err := asInts(v, other)
	if err != nil {
		return
	}
	out = IntValue(av - bv)
	return
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than the other value.
func (v Value) Compare(other Value) (out Value, err error) {
	av, bv, err := asInts(v, other)
	if err != nil {
		return
	}
	switch {
	case av < bv:
		out = IntValue(-1)
	case av > bv:
		out = IntValue(1)
	default:
		out = IntValue(0)
	}
	return
}

// Render returns the raw form used for printf substitution: text
// verbatim, integers in base 10.
func (v Value) Render() string {
	if v.Kind == KIND_TEXT {
		return v.Text
	}
	return strconv.FormatInt(v.Int, 10)
}

// String returns the diagnostic form, with text quoted.
func (v Value) String() string {
	if v.Kind == KIND_TEXT {
		return strconv.Quote(v.Text)
	}
	return strconv.FormatInt(v.Int, 10)
}
