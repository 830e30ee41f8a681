package render

import (
	"context"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/klauspost/readahead"

	"github.com/ardnew/lawl/lang"
	"github.com/ardnew/lawl/log"
	"github.com/ardnew/lawl/value"
)

// DefaultTag is the name of the reserved element.
const DefaultTag = "lua"

// Renderer renders templates against a shared [lang.Environment].
//
// A Renderer is safe for concurrent use. Each call to [Renderer.Render]
// executes in its own interpreter, so scripts in one render never observe
// globals set by another.
type Renderer struct {
	env    *lang.Environment
	tag    string
	logger log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEnvironment renders against env instead of a new, empty environment.
func WithEnvironment(env *lang.Environment) Option {
	return func(r *Renderer) {
		r.env = env
	}
}

// WithTag sets the name of the reserved element. Names are matched
// case-insensitively. An empty name keeps [DefaultTag].
func WithTag(tag string) Option {
	return func(r *Renderer) {
		if tag = normalizeTag(tag); tag != "" {
			r.tag = tag
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New returns a Renderer configured by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{tag: DefaultTag}

	for _, opt := range opts {
		opt(r)
	}

	if r.env == nil {
		r.env = lang.NewEnvironment(lang.WithLogger(r.logger))
	}

	return r
}

// Environment returns the environment shared by all renders.
func (r *Renderer) Environment() *lang.Environment { return r.env }

// Tag returns the name of the reserved element.
func (r *Renderer) Tag() string { return r.tag }

// Insert makes v visible to scripts as the global key, replacing any
// previous value. v is converted with [value.Of] when a render reads it.
// The returned error is always nil.
func (r *Renderer) Insert(key string, v any) error {
	r.env.Insert(key, value.Of(v))

	return nil
}

// Remove deletes the global key. The returned error is always nil.
func (r *Renderer) Remove(key string) error {
	r.env.Remove(key)

	return nil
}

// Render returns template with every reserved element replaced by the value
// of data after running its code attribute.
//
// If any script fails, the error is a [*lang.ScriptError] and no output is
// returned.
func (r *Renderer) Render(ctx context.Context, template string) (string, error) {
	out, err := r.render(ctx, []byte(template))
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// RenderReader renders the template read from src and writes the result to
// dst. Nothing is written unless rendering succeeds.
func (r *Renderer) RenderReader(ctx context.Context, src io.Reader, dst io.Writer) error {
	ra, err := readahead.NewReaderSize(src, readaheadBuffers, readaheadSize)
	if err != nil {
		return ErrRead.Wrap(err)
	}
	defer ra.Close()

	tmpl, err := io.ReadAll(ra)
	if err != nil {
		return ErrRead.Wrap(err)
	}

	out, err := r.render(ctx, tmpl)
	if err != nil {
		return err
	}

	_, err = dst.Write(out)
	if err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

const (
	readaheadBuffers = 4
	readaheadSize    = 64 << 10
)

func (r *Renderer) render(ctx context.Context, tmpl []byte) ([]byte, error) {
	began := time.Now()

	lctx, err := r.env.NewContext(ctx)
	if err != nil {
		r.logger.DebugContext(ctx, "render context", slog.Any("error", err))

		return nil, err
	}
	defer lctx.Close()

	ic := interceptor{tag: r.tag, exec: lctx, logger: r.logger}

	out, err := ic.splice(ctx, tmpl)
	if err != nil {
		r.logger.DebugContext(ctx, "render failed", slog.Any("error", err))

		return nil, err
	}

	if !utf8.Valid(out) {
		return nil, ErrEncoding.With(slog.Int("size", len(out)))
	}

	r.logger.DebugContext(ctx, "render complete",
		slog.Int("in", len(tmpl)),
		slog.Int("out", len(out)),
		slog.Duration("elapsed", time.Since(began)),
	)

	return out, nil
}
