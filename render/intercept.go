package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/ardnew/lawl/lang"
	"github.com/ardnew/lawl/log"
)

// codeAttribute names the attribute holding a slot's script.
const codeAttribute = "code"

// executor runs a slot's code with its content bound as data and returns
// the replacement. [*lang.Context] implements it.
type executor interface {
	Exec(code, data string) (string, error)
}

// interceptor splices the results of reserved elements into a template.
type interceptor struct {
	tag    string
	exec   executor
	logger log.Logger
}

// frame is an open slot awaiting its close tag. mark is the length of the
// output when the open tag was seen.
type frame struct {
	slot Slot
	mark int
}

// splice tokenizes src and returns it with every reserved element replaced
// by the result of executing its code.
//
// Tokens other than the reserved element are copied byte for byte. Slot
// content is taken from the output rather than the source, so nested slots
// are resolved innermost first and the outer slot sees their results.
func (ic *interceptor) splice(ctx context.Context, src []byte) ([]byte, error) {
	var (
		out     bytes.Buffer
		stack   []frame
		raw     []byte
		offset  int
		resolve = func(f frame) error {
			return ic.resolve(ctx, &out, f)
		}
	)

	out.Grow(len(src))

	z := html.NewTokenizer(bytes.NewReader(src))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, ErrTokenize.Wrap(err).With(slog.Int("offset", offset))
			}

			// An incomplete trailing tag is consumed without being emitted.
			out.Write(src[offset:])
			offset = len(src)

			break
		}

		// TagName lowercases the token in place, so keep the raw bytes first.
		raw = append(raw[:0], z.Raw()...)
		start := offset
		offset += len(raw)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != ic.tag {
				out.Write(raw)

				continue
			}

			// The self-closing flag is ignored on non-void elements, so
			// both token kinds open a slot.
			stack = append(stack, frame{
				slot: Slot{Start: offset, Code: codeAttr(z, hasAttr)},
				mark: out.Len(),
			})

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != ic.tag || len(stack) == 0 {
				out.Write(raw)

				continue
			}

			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			f.slot.End = start

			if err := resolve(f); err != nil {
				return nil, err
			}

		default:
			out.Write(raw)
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.slot.End = offset

		ic.logger.DebugContext(ctx, "implicitly closing slot", slog.Any("slot", f.slot))

		if err := resolve(f); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

// resolve replaces everything written since the frame's mark with the result
// of executing the slot.
func (ic *interceptor) resolve(ctx context.Context, out *bytes.Buffer, f frame) error {
	f.slot.Content = string(out.Bytes()[f.mark:])
	out.Truncate(f.mark)

	data, err := ic.exec.Exec(f.slot.Code, f.slot.Content)
	if err != nil {
		var se *lang.ScriptError
		if errors.As(err, &se) {
			err = se.With(slog.Int("start", f.slot.Start), slog.Int("end", f.slot.End))
		}

		return err
	}

	ic.logger.TraceContext(ctx, "slot",
		slog.Any("slot", f.slot),
		slog.Int("result", len(data)),
	)

	out.WriteString(data)

	return nil
}

// codeAttr returns the value of the code attribute of the current tag.
func codeAttr(z *html.Tokenizer, more bool) string {
	for more {
		var key, val []byte

		key, val, more = z.TagAttr()
		if string(key) == codeAttribute {
			return string(val)
		}
	}

	return ""
}

// normalizeTag folds a tag name the way the tokenizer does.
func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
