package value

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	// KindNull is the absence of a value.
	KindNull Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindNumber is a 64-bit floating point number.
	KindNumber

	// KindString is a UTF-8 string.
	KindString

	// KindSequence is an ordered list of values.
	KindSequence

	// KindMapping is a string-keyed map of values.
	KindMapping
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed value. The zero Value is null.
//
// Values are immutable once constructed; the slice and map accessors return
// copies.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Sequence returns a sequence containing items in order.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, seq: slices.Clone(items)}
}

// Mapping returns a mapping with the given fields.
func Mapping(fields map[string]Value) Value {
	return Value{kind: KindMapping, m: maps.Clone(fields)}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v and whether v is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Number returns the number held by v and whether v is a number.
func (v Value) Number() (float64, bool) { return v.n, v.kind == KindNumber }

// Str returns the string held by v and whether v is a string.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Items returns a copy of the elements of a sequence, or nil.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}

	return slices.Clone(v.seq)
}

// Fields returns a copy of the fields of a mapping, or nil.
func (v Value) Fields() map[string]Value {
	if v.kind != KindMapping {
		return nil
	}

	return maps.Clone(v.m)
}

// Len returns the number of elements of a sequence or fields of a mapping.
// It returns 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.m)
	default:
		return 0
	}
}

// Serialize implements [Serializer] by dispatching to the visitor method
// matching v's kind.
func (v Value) Serialize(vis Visitor) error {
	switch v.kind {
	case KindBool:
		return vis.VisitBool(v.b)
	case KindNumber:
		return vis.VisitNumber(v.n)
	case KindString:
		return vis.VisitString(v.s)
	case KindSequence:
		return vis.VisitSequence(v.seq)
	case KindMapping:
		return vis.VisitMapping(v.m)
	default:
		return vis.VisitNull()
	}
}

// Native converts v to plain Go values: nil, bool, float64, string, []any and
// map[string]any. Integral numbers are returned as int64.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if i := int64(v.n); float64(i) == v.n {
			return i
		}

		return v.n
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Native()
		}

		return out
	case KindMapping:
		out := make(map[string]any, len(v.m))
		for k, field := range v.m {
			out[k] = field.Native()
		}

		return out
	default:
		return nil
	}
}

// Equal reports whether v and w hold the same kind and contents.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case KindBool:
		return v.b == w.b
	case KindNumber:
		return v.n == w.n
	case KindString:
		return v.s == w.s
	case KindSequence:
		return slices.EqualFunc(v.seq, w.seq, Value.Equal)
	case KindMapping:
		return maps.EqualFunc(v.m, w.m, Value.Equal)
	default:
		return true
	}
}

// GoString returns a compact debugging representation of v.
func (v Value) GoString() string {
	var sb strings.Builder

	v.format(&sb)

	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindSequence:
		sb.WriteByte('[')

		for i, item := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}

			item.format(sb)
		}

		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')

		for i, k := range slices.Sorted(maps.Keys(v.m)) {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			v.m[k].format(sb)
		}

		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
}
