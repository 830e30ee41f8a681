package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lawl/value"
)

// valuesIndent is the indentation of printed values.
const valuesIndent = 2

// Values prints the values a render would see, as YAML.
type Values struct {
	Inputs `embed:""`
}

// Run executes the values command.
func (v *Values) Run(ctx context.Context) error {
	values, err := v.load(ctx)
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return nil
	}

	err = value.Encode(stdout(ctx), values, valuesIndent)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).With(slog.Int("count", len(values)))
	}

	return nil
}
