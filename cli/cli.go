package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lawl/cli/cmd"
	"github.com/ardnew/lawl/pkg"
)

// configBase is the base name of the configuration files.
const configBase = "config"

// dirMode is the permission of created runtime directories.
const dirMode = 0o700

// CLI is the top-level command-line interface for lawl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Render  cmd.Render  `cmd:"" default:"withargs" help:"Render a template"`
	Values  cmd.Values  `cmd:""                    help:"Print the values a render would see"`
	Init    cmd.Init    `cmd:""                    help:"Write the configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

// Options locate the runtime directories and standard streams used by
// [RunWith].
type Options struct {
	ConfigDir string
	CacheDir  string
	Stdout    io.Writer
	Stderr    io.Writer
}

// DefaultOptions uses the user's configuration and cache directories and
// the process's standard streams.
func DefaultOptions() Options {
	return Options{
		ConfigDir: pkg.ConfigDir(),
		CacheDir:  pkg.CacheDir(),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Run executes the lawl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return RunWith(ctx, DefaultOptions(), exit, args...)
}

// RunWith is [Run] with explicit directories and streams.
func RunWith(ctx context.Context, opts Options, exit func(code int), args ...string) error {
	var cli CLI

	for _, dir := range []string{opts.ConfigDir, opts.CacheDir} {
		err := os.MkdirAll(dir, dirMode)
		if err != nil {
			return err
		}
	}

	configPath := filepath.Join(opts.ConfigDir, configBase)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath + ".yaml",
		cmd.CacheIdentifier:  opts.CacheDir,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars(opts.CacheDir))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logging flags before kong parses, so that parse errors are
	// already logged in the requested format.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(opts.Stdout, opts.Stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath+".json"),
		kong.Configuration(loadYAML, configPath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
