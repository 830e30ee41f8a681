// Package profile starts optional runtime profiling using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the build tag [Tag]:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing. With
// it, the net/http/pprof handlers are also registered on the default mux.
//
// Profiles are written to the configured directory and can be inspected
// with go tool pprof:
//
//	lawl --pprof-mode=cpu render page.html
//	go tool pprof -http=: ~/.cache/lawl/pprof/cpu.pprof
package profile
