package lang

import (
	"log/slog"
	"strings"

	"github.com/ardnew/lawl/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrScript    = pkg.NewError("script execution failed")
	ErrMarshal   = pkg.NewError("failed to convert value for script")
	ErrUnmarshal = pkg.NewError("script value not representable")
	ErrDataType  = pkg.NewError(DataVariable + " is not a string")
)

// ScriptError reports a script that failed to compile or raised an error
// while running. It matches [ErrScript] with errors.Is.
type ScriptError struct {
	Code  string      // The script source that failed
	Err   error       // The interpreter diagnostic
	attrs []slog.Attr // Attributes for structured logging
}

func newScriptError(code string, err error) *ScriptError {
	return &ScriptError{Code: code, Err: err}
}

// Error implements the error interface. The message carries the interpreter
// diagnostic followed by the offending source, indented.
func (e *ScriptError) Error() string {
	var sb strings.Builder

	sb.WriteString(ErrScript.Error())

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	sb.WriteString("\n\tcode: ")
	sb.WriteString(strings.ReplaceAll(e.Code, "\n", "\n\t      "))

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ScriptError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrScript].
func (e *ScriptError) Is(target error) bool { return target == ErrScript }

// With adds attributes to the error for structured logging.
func (e *ScriptError) With(attrs ...slog.Attr) *ScriptError {
	return &ScriptError{
		Code:  e.Code,
		Err:   e.Err,
		attrs: append(append([]slog.Attr(nil), e.attrs...), attrs...),
	}
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *ScriptError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	attrs = append(attrs, slog.String("error", ErrScript.Error()))

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	attrs = append(attrs, slog.String("code", e.Code))

	return slog.GroupValue(append(attrs, e.attrs...)...)
}
