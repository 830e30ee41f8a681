// Package lang hosts the Lua side of template rendering.
//
// An [Environment] holds named values and the prelude of helper functions
// ([DefaultPrelude]).
// Each render creates its own [Context] from the environment: a fresh
// interpreter in which the prelude has run and every environment value is
// bound as a global of the same name. Scripts exchange content with the host
// through the global [DataVariable]:
//
//	env := lang.NewEnvironment()
//	env.Insert("name", value.String("world"))
//
//	ctx, err := env.NewContext(context.Background())
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	out, err := ctx.Exec("format(name)", "hello %s") // "hello world"
//
// Values cross into Lua through the [value.Serializer] capability: null is
// nil, sequences are tables indexed from 1 and mappings are tables keyed by
// string. Failures inside a script are reported as [*ScriptError], which
// matches [ErrScript] and carries the offending source.
package lang
