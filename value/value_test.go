package value

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value

	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Nil(t, v.Native())
}

func TestValue_Accessors(t *testing.T) {
	b, ok := Bool(true).Bool()
	assert.True(t, ok)
	assert.True(t, b)

	n, ok := Number(2.5).Number()
	assert.True(t, ok)
	assert.InDelta(t, 2.5, n, 0)

	s, ok := String("x").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = String("x").Number()
	assert.False(t, ok)

	assert.Equal(t, 2, Sequence(Null(), Null()).Len())
	assert.Equal(t, 1, Mapping(map[string]Value{"a": Null()}).Len())
	assert.Equal(t, 0, String("abc").Len())
}

func TestValue_ConstructorsCopy(t *testing.T) {
	items := []Value{String("a")}
	seq := Sequence(items...)
	items[0] = String("b")

	assert.True(t, seq.Items()[0].Equal(String("a")))

	fields := map[string]Value{"k": Number(1)}
	m := Mapping(fields)
	fields["k"] = Number(2)

	assert.True(t, m.Fields()["k"].Equal(Number(1)))
}

func TestValue_Native(t *testing.T) {
	v := Mapping(map[string]Value{
		"int":   Number(5),
		"float": Number(1.5),
		"list":  Sequence(Bool(true), String("s"), Null()),
	})

	assert.Equal(t, map[string]any{
		"int":   int64(5),
		"float": 1.5,
		"list":  []any{true, "s", nil},
	}, v.Native())
}

func TestValue_GoString(t *testing.T) {
	v := Mapping(map[string]Value{
		"b": Sequence(Number(1), String("x")),
		"a": Null(),
	})

	assert.Equal(t, `{"a": null, "b": [1, "x"]}`, v.GoString())
}

// recorder is a Visitor that records the name of the method called.
type recorder struct{ calls []string }

func (r *recorder) VisitNull() error                   { r.calls = append(r.calls, "null"); return nil }
func (r *recorder) VisitBool(bool) error               { r.calls = append(r.calls, "bool"); return nil }
func (r *recorder) VisitNumber(float64) error          { r.calls = append(r.calls, "number"); return nil }
func (r *recorder) VisitString(string) error           { r.calls = append(r.calls, "string"); return nil }
func (r *recorder) VisitSequence([]Value) error        { r.calls = append(r.calls, "sequence"); return nil }
func (r *recorder) VisitMapping(map[string]Value) error { r.calls = append(r.calls, "mapping"); return nil }

func TestValue_SerializeDispatch(t *testing.T) {
	var r recorder

	for _, v := range []Value{
		Null(), Bool(false), Number(0), String(""),
		Sequence(), Mapping(nil),
	} {
		require.NoError(t, v.Serialize(&r))
	}

	assert.Equal(t,
		[]string{"null", "bool", "number", "string", "sequence", "mapping"},
		r.calls)
}

func TestFrom_Natives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"bool", true, Bool(true)},
		{"int", 42, Number(42)},
		{"uint8", uint8(7), Number(7)},
		{"float32", float32(0.5), Number(0.5)},
		{"string", "hi", String("hi")},
		{"bytes", []byte("raw"), String("raw")},
		{"strings", []string{"a", "b"}, Sequence(String("a"), String("b"))},
		{"any slice", []any{1, "x"}, Sequence(Number(1), String("x"))},
		{
			"string map",
			map[string]string{"k": "v"},
			Mapping(map[string]Value{"k": String("v")}),
		},
		{
			"any map",
			map[any]any{1: "one"},
			Mapping(map[string]Value{"1": String("one")}),
		},
		{"typed slice", []int{1, 2}, Sequence(Number(1), Number(2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %#v, got %#v", tt.want, got)
		})
	}
}

func TestFrom_Struct(t *testing.T) {
	type post struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	}

	got, err := From([]post{{"a", 1}, {"b", 2}})
	require.NoError(t, err)

	want := Sequence(
		Mapping(map[string]Value{"name": String("a"), "count": Number(1)}),
		Mapping(map[string]Value{"name": String("b"), "count": Number(2)}),
	)
	assert.True(t, want.Equal(got), "got %#v", got)
}

func TestOf_IsLazy(t *testing.T) {
	m := map[string]any{"n": 1}
	s := Of(m)

	m["n"] = 2

	got, err := Materialize(s)
	require.NoError(t, err)
	assert.True(t, Mapping(map[string]Value{"n": Number(2)}).Equal(got))
}

func TestOf_KeepsSerializer(t *testing.T) {
	v := String("x")

	assert.Equal(t, Serializer(v), Of(v))
}

func TestFrom_Unsupported(t *testing.T) {
	_, err := From(make(chan int))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"1", Number(1)},
		{"0x10", Number(16)},
		{"2.5", Number(2.5)},
		{"hello", String("hello")},
		{"inf", String("inf")},
		{"", String("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, tt.want.Equal(Parse(tt.in)))
		})
	}
}

func TestEval(t *testing.T) {
	got, err := Eval(`map(1..3, {"name": "n" + string(#)})`, nil)
	require.NoError(t, err)

	require.Equal(t, KindSequence, got.Kind())
	assert.Equal(t, 3, got.Len())
	assert.True(t, got.Items()[2].Equal(
		Mapping(map[string]Value{"name": String("n3")})))
}

func TestEval_Env(t *testing.T) {
	got, err := Eval(`greeting + ", " + name`, map[string]any{
		"greeting": "hello",
		"name":     "world",
	})
	require.NoError(t, err)
	assert.True(t, String("hello, world").Equal(got))
}

func TestEval_Error(t *testing.T) {
	_, err := Eval(`1 +`, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEval))
}

func TestDecode(t *testing.T) {
	src := `
title: Posts
posts:
  - name: first
  - name: second
draft: false
`
	got, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.True(t, String("Posts").Equal(got["title"]))
	assert.True(t, Bool(false).Equal(got["draft"]))
	assert.Equal(t, 2, got["posts"].Len())
}

func TestDecode_JSON(t *testing.T) {
	got, err := Decode(strings.NewReader(`{"n": 3, "tags": ["a"]}`))
	require.NoError(t, err)

	assert.True(t, Number(3).Equal(got["n"]))
	assert.True(t, Sequence(String("a")).Equal(got["tags"]))
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_NotMapping(t *testing.T) {
	_, err := Decode(strings.NewReader("- a\n- b\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotMapping))
}

func TestEncode_RoundTrip(t *testing.T) {
	in := map[string]Value{
		"name": String("x"),
		"list": Sequence(Number(1), Bool(true)),
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in, 2))

	out, err := Decode(&buf)
	require.NoError(t, err)

	for k, v := range in {
		assert.True(t, v.Equal(out[k]), "key %s", k)
	}
}
