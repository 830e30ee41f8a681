package value

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/goccy/go-yaml"
)

// Of wraps an arbitrary Go value as a [Serializer]. Nothing is converted until
// the result is visited, so the wrapped value is read at render time.
//
// Values that already implement Serializer are returned as is.
func Of(x any) Serializer {
	if s, ok := x.(Serializer); ok {
		return s
	}

	return native{x}
}

// native defers conversion of a Go value to the moment it is visited.
type native struct{ x any }

// Serialize implements [Serializer].
func (n native) Serialize(vis Visitor) error {
	v, err := From(n.x)
	if err != nil {
		return err
	}

	return v.Serialize(vis)
}

// From converts a Go value to a [Value].
//
// Scalars, slices and string-keyed maps of supported types convert directly.
// Anything else (structs, pointers, typed slices and maps) is round-tripped
// through YAML so that yaml and json struct tags decide the field names.
func From(x any) (Value, error) {
	return from(x, true)
}

//nolint:cyclop,funlen
func from(x any, fallback bool) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Serializer:
		return Materialize(t)
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(string(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case float32:
		return Number(float64(t)), nil
	case float64:
		if math.IsNaN(t) {
			return Null(), ErrUnsupported.
				With(slog.String("type", "float64"), slog.String("value", "NaN"))
		}

		return Number(t), nil
	case []any:
		return fromSlice(t, fallback)
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = String(s)
		}

		return Sequence(items...), nil
	case map[string]any:
		return fromMap(t, fallback)
	case map[string]string:
		fields := make(map[string]Value, len(t))
		for k, s := range t {
			fields[k] = String(s)
		}

		return Mapping(fields), nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = v
		}

		return fromMap(m, fallback)
	}

	if !fallback {
		return Null(), ErrUnsupported.
			With(slog.String("type", fmt.Sprintf("%T", x)))
	}

	return fromYAML(x)
}

func fromSlice(s []any, fallback bool) (Value, error) {
	items := make([]Value, len(s))

	for i, x := range s {
		v, err := from(x, fallback)
		if err != nil {
			return Null(), err
		}

		items[i] = v
	}

	return Sequence(items...), nil
}

func fromMap(m map[string]any, fallback bool) (Value, error) {
	fields := make(map[string]Value, len(m))

	for k, x := range m {
		v, err := from(x, fallback)
		if err != nil {
			return Null(), err
		}

		fields[k] = v
	}

	return Mapping(fields), nil
}

// fromYAML converts x by encoding it as YAML and decoding the document into
// generic Go values.
func fromYAML(x any) (Value, error) {
	data, err := yaml.Marshal(x)
	if err != nil {
		return Null(), ErrUnsupported.Wrap(err).
			With(slog.String("type", fmt.Sprintf("%T", x)))
	}

	var generic any

	err = yaml.Unmarshal(data, &generic)
	if err != nil {
		return Null(), ErrUnsupported.Wrap(err).
			With(slog.String("type", fmt.Sprintf("%T", x)))
	}

	return from(generic, false)
}
