// Package cli contains the command line interface for lawl.
//
// # Usage
//
//	lawl [flags] render [TEMPLATE|-] [--values FILE] [--set KEY=VALUE]
//	     [--eval KEY=EXPR] [--tag NAME] [--output FILE] [--watch]
//	lawl values [--values FILE] [--set KEY=VALUE] [--eval KEY=EXPR]
//	lawl init [--force]
//	lawl version
//
// render is the default command, so "lawl page.html" renders page.html to
// standard output.
//
// # Configuration
//
// Global flags may be set in config.yaml or config.json in the user
// configuration directory ($XDG_CONFIG_HOME/lawl on Linux). Keys are flag
// names; nested YAML mappings are joined with '-':
//
//	log:
//	  level: debug
//	  format: json
//
// lawl init writes the current global flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn or error
//   - --log-format: text or json
//   - --log-time-layout: a time layout or name such as RFC3339 or none
//   - --[no-]log-caller: include the source location
//   - --[no-]log-pretty: colorize text output on terminals
//
// # Profiling Options
//
// Available only when built with the pprof build tag:
//
//   - --pprof-mode: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
//     thread or trace
//   - --pprof-dir: output directory (default $XDG_CACHE_HOME/lawl/pprof)
package cli
