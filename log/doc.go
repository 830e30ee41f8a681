// Package log provides leveled structured logging on top of [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Logging methods take [slog.Attr] values only:
//
//	logger.Info("render complete", slog.Int("slots", 3))
//
// Each level has a context-aware variant (InfoContext, ...). The others use
// [DefaultContextProvider].
//
// Levels range from [LevelTrace] to [LevelError]. Text output is colorized
// when [WithPretty] is enabled and the writer is a color terminal.
//
// The zero Logger is valid and discards all output, so components accept a
// Logger option and log unconditionally. The package-level functions write
// to a default logger on stderr that [Config] reconfigures.
package log
