package cmd

import (
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lawl/pkg"
)

func TestVersion(t *testing.T) {
	var cli struct {
		Version Version `cmd:""`
	}

	ctx, out := parse(t, &cli, kong.Vars{}, "version")

	err := cli.Version.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if want := pkg.Name + " " + pkg.Version + "\n"; out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}
