package cmd

import "github.com/ardnew/lawl/pkg"

// Predefined errors (sentinel values).
var (
	ErrReadTemplate    = pkg.NewError("read template")
	ErrWriteOutput     = pkg.NewError("write output")
	ErrParseAssignment = pkg.NewError("invalid assignment (want key=value)")
	ErrLoadValues      = pkg.NewError("load values")
	ErrWatch           = pkg.NewError("watch files")
	ErrWriteConfig     = pkg.NewError("write configuration file")
	ErrFileExists      = pkg.NewError("file exists (use --force to overwrite)")
	ErrYAMLMarshal     = pkg.NewError("marshal YAML")
)
