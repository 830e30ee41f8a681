package value

import (
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// Decode reads a YAML (or JSON, which is a subset) document whose top level
// is a mapping and returns its entries as values.
//
// An empty document yields an empty map.
func Decode(r io.Reader) (map[string]Value, error) {
	var doc any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]Value{}, nil
		}

		return nil, ErrDecode.Wrap(err)
	}

	if doc == nil {
		return map[string]Value{}, nil
	}

	v, err := From(doc)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if v.Kind() != KindMapping {
		return nil, ErrNotMapping.With(slog.String("kind", v.Kind().String()))
	}

	return v.m, nil
}

// Encode writes the given entries as a YAML mapping.
func Encode(w io.Writer, entries map[string]Value, indent int) error {
	doc := make(map[string]any, len(entries))
	for k, v := range entries {
		doc[k] = v.Native()
	}

	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	return yaml.NewEncoder(w, opts...).Encode(doc)
}
