package render

import "log/slog"

// Slot is one occurrence of the reserved element in a template.
type Slot struct {
	Start   int    // Byte offset just after the open tag
	End     int    // Byte offset where the close tag begins
	Code    string // Value of the code attribute, entity-decoded
	Content string // Text captured between the tags
}

// LogValue implements slog.LogValuer.
func (s Slot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("start", s.Start),
		slog.Int("end", s.End),
		slog.Int("content", len(s.Content)),
	)
}
