package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/natefinch/atomic"

	"github.com/ardnew/lawl/log"
	"github.com/ardnew/lawl/render"
)

// stdinTemplate names standard input as the template source.
const stdinTemplate = "-"

// Render renders a template to a file or standard output.
type Render struct {
	Inputs `embed:""`

	Template string `arg:"" default:"-" help:"Template file or '-' for stdin"`

	Tag    string `default:"lua" help:"Name of the reserved element"`
	Output string `help:"Write to FILE atomically instead of stdout" placeholder:"FILE" short:"o" type:"path"`
	Watch  bool   `help:"Render again whenever the template or a values file changes" short:"w"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	if r.Watch && r.Template == stdinTemplate {
		return ErrWatch.Wrap(ErrReadTemplate).With(slog.String("template", r.Template))
	}

	err := r.renderOnce(ctx)
	if err != nil || !r.Watch {
		return err
	}

	return r.watch(ctx)
}

// renderOnce loads values and the template from scratch and writes the
// result.
func (r *Render) renderOnce(ctx context.Context) error {
	began := time.Now()

	values, err := r.load(ctx)
	if err != nil {
		return err
	}

	rnd := render.New(
		render.WithTag(r.Tag),
		render.WithLogger(log.Default()),
	)

	for k, v := range values {
		_ = rnd.Insert(k, v)
	}

	src, closeSrc, err := r.open()
	if err != nil {
		return err
	}
	defer closeSrc()

	var out bytes.Buffer

	err = rnd.RenderReader(ctx, src, &out)
	if err != nil {
		return err
	}

	err = r.write(ctx, &out)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "rendered",
		slog.String("template", r.Template),
		slog.String("output", r.destination()),
		slog.Int("values", len(values)),
		slog.Duration("elapsed", time.Since(began)),
	)

	return nil
}

func (r *Render) open() (io.Reader, func(), error) {
	if r.Template == stdinTemplate {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(r.Template)
	if err != nil {
		return nil, nil, ErrReadTemplate.Wrap(err).With(slog.String("file", r.Template))
	}

	return f, func() { _ = f.Close() }, nil
}

func (r *Render) write(ctx context.Context, out *bytes.Buffer) error {
	if r.Output == "" {
		_, err := out.WriteTo(stdout(ctx))
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	err := atomic.WriteFile(r.Output, out)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", r.Output))
	}

	return nil
}

func (r *Render) destination() string {
	if r.Output == "" {
		return "stdout"
	}

	return r.Output
}

// watched returns the absolute paths whose changes trigger a render.
func (r *Render) watched() (map[string]struct{}, error) {
	files := make(map[string]struct{}, 1+len(r.Values))

	for _, path := range append([]string{r.Template}, r.Values...) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, ErrWatch.Wrap(err).With(slog.String("file", path))
		}

		files[abs] = struct{}{}
	}

	return files, nil
}

// watch renders again after every write to a watched file until ctx is
// done. Parent directories are watched rather than the files themselves so
// editors that replace files by renaming are noticed. Render failures are
// logged and do not stop watching.
func (r *Render) watch(ctx context.Context) error {
	files, err := r.watched()
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	dirs := make(map[string]struct{})
	for path := range files {
		dirs[filepath.Dir(path)] = struct{}{}
	}

	for dir := range dirs {
		err = w.Add(dir)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("dir", dir))
		}
	}

	log.InfoContext(ctx, "watching for changes", slog.Int("files", len(files)))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if _, hit := files[ev.Name]; !hit || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}

			log.DebugContext(ctx, "changed",
				slog.String("file", ev.Name),
				slog.String("op", ev.Op.String()),
			)

			if err := r.renderOnce(ctx); err != nil {
				log.ErrorContext(ctx, "render failed", slog.Any("error", err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			return ErrWatch.Wrap(err)
		}
	}
}
