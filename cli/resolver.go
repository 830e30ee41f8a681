package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/lawl/pkg"
)

// ErrConfig is returned for a configuration file that is not a YAML mapping.
var ErrConfig = pkg.NewError("invalid configuration file")

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys are flag names. Nested mappings are joined with '-', so both of the
// following set --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Underscores may stand in for hyphens. A list sets a repeatable flag once
// per element. Command-line flags override configuration values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over flattened configuration keys.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := prefix + strings.ReplaceAll(k, "_", "-")

		switch t := v.(type) {
		case map[string]any:
			c.flatten(key+"-", t)
		case []any:
			// Kept as a list so kong decodes each element on its own,
			// whatever separator the flag declares.
			items := make([]any, len(t))
			for i, item := range t {
				items[i] = scalar(item)
			}

			c[key] = items
		case bool, nil:
			c[key] = t
		default:
			c[key] = scalar(t)
		}
	}
}

// scalar formats a decoded YAML scalar the way it would be typed on the
// command line.
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := c[flag.Name]
	if !ok || v == nil {
		return nil, nil //nolint:nilnil
	}

	return v, nil
}
