package render

import "github.com/ardnew/lawl/pkg"

// Predefined errors (sentinel values).
var (
	ErrEncoding = pkg.NewError("rendered output is not valid UTF-8")
	ErrTokenize = pkg.NewError("failed to tokenize template")
	ErrRead     = pkg.NewError("failed to read template")
	ErrWrite    = pkg.NewError("failed to write output")
)
