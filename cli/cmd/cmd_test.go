package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

// parse parses args against target and returns a context carrying the
// resulting kong.Context together with the captured standard output.
func parse(t *testing.T, target any, vars kong.Vars, args ...string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	parser, err := kong.New(target,
		kong.Writers(&out, io.Discard),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		vars,
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	return WithContext(t.Context(), ktx), &out
}

// writeFile creates name under dir with the given content and returns its
// path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestKongContext(t *testing.T) {
	if kongContextFrom(t.Context()) != nil {
		t.Error("expected no kong context")
	}

	if _, ok := modelVar(t.Context(), ConfigIdentifier); ok {
		t.Error("expected no model variables")
	}

	var cli struct{}

	ctx, out := parse(t, &cli, kong.Vars{ConfigIdentifier: "/tmp/x.yaml"})

	if v, ok := modelVar(ctx, ConfigIdentifier); !ok || v != "/tmp/x.yaml" {
		t.Errorf("expected config variable, got %q (%v)", v, ok)
	}

	if stdout(ctx) != io.Writer(out) {
		t.Error("expected kong's stdout writer")
	}

	if stdout(context.Background()) != io.Writer(os.Stdout) {
		t.Error("expected os.Stdout without kong context")
	}
}
