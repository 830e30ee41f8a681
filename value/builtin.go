package value

import (
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// builtins is built once; [Builtins] hands out shallow copies.
//
//nolint:gochecknoglobals
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"cwd": func() string {
			wd, err := os.Getwd()
			if err != nil {
				return "."
			}

			return wd
		},
		"file": map[string]any{
			"exists": fileExists,
			"isDir":  fileIsDir,
		},
		"path": map[string]any{
			"abs":  pathAbs,
			"base": filepath.Base,
			"cat":  pathCat,
			"dir":  filepath.Dir,
			"rel":  pathRel,
		},
		"mung": map[string]any{
			"prefix": mungPrefix,
		},
	}
})

// Builtins returns the helper namespaces available to [Eval] expressions
// by default, plus "env", a snapshot of the process environment.
//
//	path.cat("a", "b")                   // "a/b"
//	mung.prefix(env.PATH, "/opt/bin")    // "/opt/bin:..."
//	file.exists(path.cat(cwd(), "go.mod"))
func Builtins() map[string]any {
	env := maps.Clone(builtins())
	env["env"] = processEnv(os.Environ())

	return env
}

func processEnv(list []string) map[string]string {
	out := make(map[string]string, len(list))

	for _, kv := range list {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			out[k] = v
		}
	}

	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func pathAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}

func pathCat(elem ...string) string { return filepath.Join(elem...) }

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

// mungPrefix prepends items to the PATH-like list subject.
func mungPrefix(subject string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
	).String()
}
