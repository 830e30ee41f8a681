package lang

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/ardnew/lawl/value"
)

// Marshal converts s into a Lua value owned by state.
//
// Sequences become tables indexed from 1, mappings become tables keyed by
// string, and null becomes nil. A null element inside a sequence leaves a
// hole, so ipairs stops before it.
func Marshal(state *lua.LState, s value.Serializer) (lua.LValue, error) {
	if s == nil {
		return lua.LNil, nil
	}

	m := marshaller{state: state, out: lua.LNil}

	err := s.Serialize(&m)
	if err != nil {
		return lua.LNil, err
	}

	return m.out, nil
}

// marshaller is a value.Visitor that builds a Lua value.
type marshaller struct {
	state *lua.LState
	out   lua.LValue
}

func (m *marshaller) VisitNull() error {
	m.out = lua.LNil

	return nil
}

func (m *marshaller) VisitBool(b bool) error {
	m.out = lua.LBool(b)

	return nil
}

func (m *marshaller) VisitNumber(n float64) error {
	m.out = lua.LNumber(n)

	return nil
}

func (m *marshaller) VisitString(s string) error {
	m.out = lua.LString(s)

	return nil
}

func (m *marshaller) VisitSequence(items []value.Value) error {
	tbl := m.state.CreateTable(len(items), 0)

	for i, item := range items {
		lv, err := Marshal(m.state, item)
		if err != nil {
			return err
		}

		tbl.RawSetInt(i+1, lv)
	}

	m.out = tbl

	return nil
}

func (m *marshaller) VisitMapping(fields map[string]value.Value) error {
	tbl := m.state.CreateTable(0, len(fields))

	for k, field := range fields {
		lv, err := Marshal(m.state, field)
		if err != nil {
			return err
		}

		tbl.RawSetString(k, lv)
	}

	m.out = tbl

	return nil
}

// Unmarshal converts a Lua value back into a [value.Value]. Tables whose keys
// are exactly 1..n become sequences; other tables become mappings with keys
// converted by Lua's tostring rules. Functions, userdata, threads and
// channels are not representable and yield [ErrUnmarshal].
func Unmarshal(lv lua.LValue) (value.Value, error) {
	switch t := lv.(type) {
	case *lua.LNilType:
		return value.Null(), nil
	case lua.LBool:
		return value.Bool(bool(t)), nil
	case lua.LNumber:
		return value.Number(float64(t)), nil
	case lua.LString:
		return value.String(string(t)), nil
	case *lua.LTable:
		return unmarshalTable(t)
	default:
		return value.Null(), ErrUnmarshal.With(typeAttr(lv))
	}
}

func unmarshalTable(tbl *lua.LTable) (value.Value, error) {
	n := tbl.Len()
	count := 0
	fields := make(map[string]value.Value)

	var err error

	tbl.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}

		count++

		var fv value.Value

		fv, err = Unmarshal(v)
		if err != nil {
			return
		}

		fields[lua.LVAsString(k)] = fv
	})

	if err != nil {
		return value.Null(), err
	}

	if count == n && n > 0 {
		items := make([]value.Value, n)
		for i := range n {
			items[i], err = Unmarshal(tbl.RawGetInt(i + 1))
			if err != nil {
				return value.Null(), err
			}
		}

		return value.Sequence(items...), nil
	}

	return value.Mapping(fields), nil
}
