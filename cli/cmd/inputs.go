package cmd

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ardnew/lawl/log"
	"github.com/ardnew/lawl/value"
)

// Inputs are the flags that populate the render environment. Files are
// loaded first in order, then --set literals, then --eval expressions, each
// of which may refer to any value defined before it and to the helpers of
// [value.Builtins]. Later definitions of a key replace earlier ones.
type Inputs struct {
	Values []string `help:"Load values from a YAML or JSON file"          name:"values" placeholder:"FILE"      sep:"none" short:"f" type:"existingfile"`
	Set    []string `help:"Set a value, inferring bool, number or string"               placeholder:"KEY=VALUE" sep:"none" short:"s"`
	Eval   []string `help:"Set a value from an expression"                              placeholder:"KEY=EXPR"  sep:"none" short:"e"`
}

// identifier matches names usable as Lua globals.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseAssignment splits "key=rhs" at the first '='.
func parseAssignment(arg string) (key, rhs string, err error) {
	key, rhs, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)

	if !ok || !identifier.MatchString(key) {
		return "", "", ErrParseAssignment.With(slog.String("arg", arg))
	}

	return key, rhs, nil
}

// load builds the value map described by the flags.
func (in *Inputs) load(ctx context.Context) (map[string]value.Value, error) {
	out := make(map[string]value.Value)

	for _, path := range in.Values {
		entries, err := decodeFile(path)
		if err != nil {
			return nil, err
		}

		for k, v := range entries {
			out[k] = v
		}

		log.DebugContext(ctx, "loaded values",
			slog.String("file", path),
			slog.Int("count", len(entries)),
		)
	}

	for _, arg := range in.Set {
		key, lit, err := parseAssignment(arg)
		if err != nil {
			return nil, err
		}

		out[key] = value.Parse(lit)
	}

	if len(in.Eval) == 0 {
		return out, nil
	}

	// Values shadow builtins of the same name.
	env := value.Builtins()
	for k, v := range out {
		env[k] = v.Native()
	}

	for _, arg := range in.Eval {
		key, src, err := parseAssignment(arg)
		if err != nil {
			return nil, err
		}

		v, err := value.Eval(src, env)
		if err != nil {
			return nil, ErrLoadValues.Wrap(err).With(slog.String("key", key))
		}

		out[key] = v
		env[key] = v.Native()
	}

	return out, nil
}

func decodeFile(path string) (map[string]value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrLoadValues.Wrap(err).With(slog.String("file", path))
	}
	defer f.Close()

	entries, err := value.Decode(f)
	if err != nil {
		return nil, ErrLoadValues.Wrap(err).With(slog.String("file", path))
	}

	return entries, nil
}
