package lang

import (
	"log/slog"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func typeAttr(lv lua.LValue) slog.Attr {
	return slog.String("type", lv.Type().String())
}
