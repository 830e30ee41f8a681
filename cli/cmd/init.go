package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/ardnew/lawl/log"
	"github.com/ardnew/lawl/profile"
)

// configIndent is the indentation of the generated configuration file.
const configIndent = 2

// configDirMode is the permission of a created configuration directory.
const configDirMode = 0o700

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	confPath, ok := modelVar(ctx, ConfigIdentifier)
	if !ok {
		panic("internal error: config path undefined")
	}

	attr := slog.String("file", confPath)

	_, err := os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.With(attr).Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	err = yaml.NewEncoder(&buf, yaml.Indent(configIndent)).Encode(i.settings(ctx))
	if err != nil {
		return ErrWriteConfig.With(attr).Wrap(ErrYAMLMarshal.Wrap(err))
	}

	err = os.MkdirAll(filepath.Dir(confPath), configDirMode)
	if err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	err = atomic.WriteFile(confPath, &buf)
	if err != nil {
		return ErrWriteConfig.With(attr).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file", attr)

	return nil
}

// settings collects the values of the global flags, keyed by flag name.
// Help and profiling flags and empty strings are left out.
func (i *Init) settings(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)
	out := make(map[string]any)

	skip := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(skip, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				out[flag.Name] = v
			}
		case []string:
			if len(v) > 0 {
				out[flag.Name] = v
			}
		case interface{ String() string }:
			if s := v.String(); s != "" {
				out[flag.Name] = s
			}
		default:
			out[flag.Name] = v
		}
	}

	return out
}
