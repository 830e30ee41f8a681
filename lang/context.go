package lang

import (
	"context"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/ardnew/lawl/pkg"
	"github.com/ardnew/lawl/value"
)

// Context is a fresh Lua interpreter prepared for one render. It holds the
// prelude helpers and a snapshot of the environment taken when the Context
// was created. Globals assigned by one script remain visible to later scripts
// executed in the same Context.
//
// A Context is not safe for concurrent use. Close it when the render ends.
type Context struct {
	state  *lua.LState
	env    *Environment
	closed bool
}

// NewContext creates an interpreter, runs the prelude, then binds every
// environment value as a global of the same name. Environment values may
// therefore shadow prelude helpers.
//
// The ctx is used only to correlate log records.
func (e *Environment) NewContext(ctx context.Context) (*Context, error) {
	state := lua.NewState()

	for _, fn := range e.functions {
		err := state.DoString(fn)
		if err != nil {
			state.Close()

			return nil, newScriptError(fn, err)
		}
	}

	err := e.bind(ctx, state)
	if err != nil {
		state.Close()

		return nil, err
	}

	return &Context{state: state, env: e}, nil
}

// bind converts each environment value into a global of state. The key set
// is read-locked for the duration; each value is locked only while it is
// converted.
func (e *Environment) bind(ctx context.Context, state *lua.LState) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, key := range sortedKeys(e.values) {
		lv, err := e.values[key].marshal(state)
		if err != nil {
			return ErrMarshal.Wrap(err).With(slog.String("key", key))
		}

		state.SetGlobal(key, lv)

		e.logger.TraceContext(ctx, "bind",
			slog.String("key", key),
			typeAttr(lv),
		)
	}

	return nil
}

func (c *cell) marshal(state *lua.LState) (lua.LValue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Marshal(state, c.value)
}

// Exec runs code with the global [DataVariable] set to data and returns the
// final value of that global.
//
// A string result is returned as is, a number is formatted by Lua's tostring
// rules and nil yields the empty string. Any other type, or a script that
// fails to compile or raises an error, yields a [*ScriptError].
func (c *Context) Exec(code, data string) (string, error) {
	c.state.SetGlobal(DataVariable, lua.LString(data))

	err := c.state.DoString(code)
	if err != nil {
		return "", newScriptError(code, err)
	}

	switch lv := c.state.GetGlobal(DataVariable).(type) {
	case lua.LString:
		return string(lv), nil
	case lua.LNumber:
		return lv.String(), nil
	case *lua.LNilType:
		return "", nil
	default:
		return "", newScriptError(code, ErrDataType.With(typeAttr(lv)))
	}
}

// Global returns the current value of the named global.
func (c *Context) Global(name string) (value.Value, error) {
	v, err := Unmarshal(c.state.GetGlobal(name))
	if err != nil {
		return value.Null(), pkg.WrapError(err).With(slog.String("name", name))
	}

	return v, nil
}

// Close releases the interpreter. Closing an already closed Context is a
// no-op.
func (c *Context) Close() {
	if c.closed {
		return
	}

	c.closed = true
	c.state.Close()
}
