package value

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/expr-lang/expr"
)

// Parse infers the type of a literal string the way a shell user would
// expect: "true" and "false" are booleans, then integers, then floats, and
// anything else is a string.
func Parse(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Number(float64(i))
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil &&
		!math.IsNaN(f) && !math.IsInf(f, 0) {
		return Number(f)
	}

	return String(s)
}

// Eval compiles and runs an expr-lang expression and converts its result.
//
// The names in env are visible to the expression. A nil env is allowed.
func Eval(source string, env map[string]any) (Value, error) {
	opts := []expr.Option{}
	if env != nil {
		opts = append(opts, expr.Env(env))
	}

	program, err := expr.Compile(source, opts...)
	if err != nil {
		return Null(), ErrEval.Wrap(err).
			With(slog.String("source", source))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return Null(), ErrEval.Wrap(err).
			With(slog.String("source", source))
	}

	v, err := From(out)
	if err != nil {
		return Null(), ErrEval.Wrap(err).
			With(slog.String("source", source))
	}

	return v, nil
}
