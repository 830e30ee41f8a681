package lang

// DataVariable is the global through which slot content enters a script and
// the rendered replacement leaves it.
const DataVariable = "data"

// DefaultPrelude returns the helper definitions executed in every new
// [Context] before environment values are bound. Each call returns a new
// slice. Each helper reads or rewrites the
// global [DataVariable].
//
//   - show(v): clears data unless v is truthy and not ''.
//   - hide(v): clears data if v is truthy and not ''.
//   - maybe(v, o): returns v if truthy, otherwise o.
//   - format(...): data = string.format(data, ...).
//   - each(items): expands data once per element of items, replacing each
//     $name with the element's field name ('' when the field is absent), and
//     concatenates the results in order.
func DefaultPrelude() []string {
	return []string{
		`function show(v) if (v or '') == '' then data = '' end end`,
		`function hide(v) if (v or '') ~= '' then data = '' end end`,
		`function maybe(v, o) return v or o end`,
		`function format(...) data = string.format(data, ...) end`,
		`function each(items)
		local template = data
		local out = {}
		for _, item in ipairs(items or {}) do
			out[#out + 1] = (template:gsub('%$([a-zA-Z_]+)', function(name)
				local field = item[name]
				if field == nil then return '' end
				return tostring(field)
			end))
		end
		data = table.concat(out)
	end`,
	}
}
