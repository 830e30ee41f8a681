package value

import "github.com/ardnew/lawl/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnsupported = pkg.NewError("unsupported value type")
	ErrDecode      = pkg.NewError("failed to decode values")
	ErrNotMapping  = pkg.NewError("values document is not a mapping")
	ErrEval        = pkg.NewError("expression evaluation failed")
)
