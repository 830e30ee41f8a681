package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/lawl/cli/cmd"
	"github.com/ardnew/lawl/pkg"
)

// runIn runs the CLI against fresh runtime directories and returns the
// captured standard output and the configuration directory.
func runIn(t *testing.T, conf string, args ...string) (string, string, error) {
	t.Helper()
	quiet(t)

	dir := t.TempDir()
	opts := Options{
		ConfigDir: filepath.Join(dir, "config"),
		CacheDir:  filepath.Join(dir, "cache"),
		Stdout:    &bytes.Buffer{},
		Stderr:    &bytes.Buffer{},
	}

	if conf != "" {
		err := os.MkdirAll(opts.ConfigDir, dirMode)
		if err != nil {
			t.Fatal(err)
		}

		err = os.WriteFile(filepath.Join(opts.ConfigDir, configBase+".yaml"), []byte(conf), 0o600)
		if err != nil {
			t.Fatal(err)
		}
	}

	exit := func(code int) { t.Fatalf("unexpected exit(%d)", code) }

	err := RunWith(t.Context(), opts, exit, args...)

	return opts.Stdout.(*bytes.Buffer).String(), opts.ConfigDir, err
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.html")

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	return path
}

func TestRunWith_Render(t *testing.T) {
	tmpl := writeTemplate(t, `<h1><lua code="format(who)">hi %s</lua></h1>`)

	for _, args := range [][]string{
		{"render", tmpl, "--set", "who=you"},
		{tmpl, "-s", "who=you"},
	} {
		out, _, err := runIn(t, "", args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}

		if want := "<h1>hi you</h1>"; out != want {
			t.Errorf("%v: expected %q, got %q", args, want, out)
		}
	}
}

func TestRunWith_ConfigFile(t *testing.T) {
	tmpl := writeTemplate(t, `<tpl code="data = 'X'">y</tpl><lua>z</lua>`)

	out, _, err := runIn(t, "tag: tpl\nlog:\n  level: warn\n", "render", tmpl)
	if err != nil {
		t.Fatal(err)
	}

	if want := "X<lua>z</lua>"; out != want {
		t.Errorf("expected %q, got %q", want, out)
	}

	// Flags override the configuration file.
	out, _, err = runIn(t, "tag: tpl\n", "render", "--tag", "lua", tmpl)
	if err != nil {
		t.Fatal(err)
	}

	if want := "<tpl code=\"data = 'X'\">y</tpl>z"; out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestRunWith_ConfigLists(t *testing.T) {
	tmpl := writeTemplate(t, `<lua code="data = tostring(a) .. '|' .. tostring(b) .. '|' .. c"></lua>`)

	out, _, err := runIn(t, "set:\n  - a=1\n  - b=x,y\neval: [c='e']\n", "render", tmpl)
	if err != nil {
		t.Fatal(err)
	}

	if want := "1|x,y|e"; out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestRunWith_InvalidConfig(t *testing.T) {
	_, _, err := runIn(t, "- a\n- b\n", "version")
	if !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestRunWith_Version(t *testing.T) {
	out, _, err := runIn(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}

	if want := pkg.Name + " " + pkg.Version + "\n"; out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestRunWith_Init(t *testing.T) {
	_, confDir, err := runIn(t, "", "--log-level", "debug", "init")
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(confDir, configBase+".yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "log-level: debug") {
		t.Errorf("expected log-level in config:\n%s", data)
	}
}

func TestRunWith_Errors(t *testing.T) {
	_, _, err := runIn(t, "", "render", filepath.Join(t.TempDir(), "missing.html"))
	if !errors.Is(err, cmd.ErrReadTemplate) {
		t.Errorf("expected ErrReadTemplate, got %v", err)
	}

	tmpl := writeTemplate(t, `<lua code="nope(">x</lua>`)

	_, _, err = runIn(t, "", "render", tmpl)
	if err == nil {
		t.Error("expected script error")
	}
}
