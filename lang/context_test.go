package lang

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/lawl/value"
)

func newTestContext(t *testing.T, env *Environment) *Context {
	t.Helper()

	if env == nil {
		env = NewEnvironment()
	}

	ctx, err := env.NewContext(t.Context())
	if err != nil {
		t.Fatalf("new context: %v", err)
	}

	t.Cleanup(ctx.Close)

	return ctx
}

func TestExec_Prelude(t *testing.T) {
	env := NewEnvironment()
	env.Insert("name", value.String("age"))
	env.Insert("age", value.Number(5))
	env.Insert("empty", value.String(""))
	env.Insert("items", value.Sequence(
		value.Mapping(map[string]value.Value{"name": value.String("a")}),
		value.Mapping(map[string]value.Value{"name": value.String("b"), "n": value.Number(2)}),
		value.Mapping(map[string]value.Value{"n": value.Number(3)}),
	))

	tests := []struct {
		name string
		code string
		data string
		want string
	}{
		{"show truthy", "show(name)", "kept", "kept"},
		{"show missing", "show(missing)", "kept", ""},
		{"show empty", "show(empty)", "kept", ""},
		{"show false", "show(false)", "kept", ""},
		{"hide truthy", "hide(name)", "kept", ""},
		{"hide missing", "hide(missing)", "kept", "kept"},
		{"hide empty", "hide(empty)", "kept", "kept"},
		{"maybe present", "data = maybe(name, 'other')", "", "age"},
		{"maybe missing", "data = maybe(missing, 'other')", "", "other"},
		{"format", "format(name, age)", "%s is %d", "age is 5"},
		{"each", "each(items)", "[$name:$n]", "[a:][b:2][:3]"},
		{"each nil", "each(missing)", "[$name]", ""},
		{"each empty data", "each(items)", "", ""},
		{"untouched", "local x = 1", "same", "same"},
		{"number result", "data = age * 2", "", "10"},
		{"nil result", "data = nil", "gone", ""},
		{"nested field", "data = items[2].name", "", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, env)

			got, err := ctx.Exec(tt.code, tt.data)
			if err != nil {
				t.Fatalf("exec: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExec_ShowHideInverse(t *testing.T) {
	for _, v := range []value.Value{
		value.Null(),
		value.Bool(false),
		value.Bool(true),
		value.String(""),
		value.String("x"),
		value.Number(0),
	} {
		env := NewEnvironment()
		env.Insert("v", v)

		ctx := newTestContext(t, env)

		shown, err := ctx.Exec("show(v)", "content")
		if err != nil {
			t.Fatalf("show: %v", err)
		}

		hidden, err := ctx.Exec("hide(v)", "content")
		if err != nil {
			t.Fatalf("hide: %v", err)
		}

		if (shown == "") == (hidden == "") {
			t.Errorf("%#v: show=%q hide=%q, expected exactly one empty",
				v, shown, hidden)
		}
	}
}

func TestExec_GlobalsPersistWithinContext(t *testing.T) {
	ctx := newTestContext(t, nil)

	_, err := ctx.Exec("counter = (counter or 0) + 1", "")
	if err != nil {
		t.Fatalf("first exec: %v", err)
	}

	got, err := ctx.Exec("counter = counter + 1; data = counter", "")
	if err != nil {
		t.Fatalf("second exec: %v", err)
	}

	if got != "2" {
		t.Errorf("expected 2, got %q", got)
	}

	other := newTestContext(t, nil)

	got, err = other.Exec("data = tostring(counter)", "")
	if err != nil {
		t.Fatalf("other exec: %v", err)
	}

	if got != "nil" {
		t.Errorf("expected counter to be unset in a new context, got %q", got)
	}
}

func TestExec_HostShadowsPrelude(t *testing.T) {
	env := NewEnvironment()
	env.Insert("show", value.String("shadowed"))

	ctx := newTestContext(t, env)

	got, err := ctx.Exec("data = show", "")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}

	if got != "shadowed" {
		t.Errorf("expected shadowed, got %q", got)
	}
}

func TestExec_ScriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		cause error
		text  string
	}{
		{"syntax", "data = = 1", nil, ""},
		{"runtime", "error('boom')", nil, "boom"},
		{"bad data", "data = {}", ErrDataType, ""},
		{"bad data bool", "data = true", ErrDataType, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t, nil)

			got, err := ctx.Exec(tt.code, "data")
			if err == nil {
				t.Fatalf("expected error, got %q", got)
			}

			if got != "" {
				t.Errorf("expected empty output, got %q", got)
			}

			if !errors.Is(err, ErrScript) {
				t.Errorf("expected ErrScript, got %v", err)
			}

			var se *ScriptError
			if !errors.As(err, &se) {
				t.Fatalf("expected *ScriptError, got %T", err)
			}

			if se.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, se.Code)
			}

			if !strings.Contains(err.Error(), tt.code) {
				t.Errorf("message %q does not contain code %q", err, tt.code)
			}

			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}

			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("message %q does not contain %q", err, tt.text)
			}
		})
	}
}

func TestNewContext_BadPrelude(t *testing.T) {
	env := NewEnvironment()
	env.functions = append(env.functions, "function (")

	_, err := env.NewContext(t.Context())
	if !errors.Is(err, ErrScript) {
		t.Fatalf("expected ErrScript, got %v", err)
	}
}

func TestNewContext_MarshalError(t *testing.T) {
	env := NewEnvironment()
	env.Insert("bad", value.Of(make(chan int)))

	_, err := env.NewContext(t.Context())
	if !errors.Is(err, ErrMarshal) {
		t.Fatalf("expected ErrMarshal, got %v", err)
	}

	if !errors.Is(err, value.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported cause, got %v", err)
	}
}

func TestNewContext_ReadsValuesLazily(t *testing.T) {
	m := map[string]any{"greeting": "hello"}

	env := NewEnvironment()
	env.Insert("m", value.Of(m))

	m["greeting"] = "goodbye"

	ctx := newTestContext(t, env)

	got, err := ctx.Exec("data = m.greeting", "")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}

	if got != "goodbye" {
		t.Errorf("expected goodbye, got %q", got)
	}
}

func TestNewContext_Concurrent(t *testing.T) {
	env := NewEnvironment()
	env.Insert("n", value.Number(1))

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if i%4 == 0 {
				env.Insert("extra", value.Number(float64(i)))

				return
			}

			ctx, err := env.NewContext(t.Context())
			if err != nil {
				t.Errorf("new context: %v", err)

				return
			}
			defer ctx.Close()

			got, err := ctx.Exec("x = (x or 0) + n; data = x", "")
			if err != nil {
				t.Errorf("exec: %v", err)

				return
			}

			if got != "1" {
				t.Errorf("expected isolated result 1, got %q", got)
			}
		}()
	}

	wg.Wait()
}

func TestContext_CloseTwice(t *testing.T) {
	ctx, err := NewEnvironment().NewContext(t.Context())
	if err != nil {
		t.Fatalf("new context: %v", err)
	}

	ctx.Close()
	ctx.Close()
}
