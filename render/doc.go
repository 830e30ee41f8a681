// Package render splices the output of embedded Lua scripts into HTML
// templates.
//
// A template is ordinary markup containing zero or more reserved elements:
//
//	<p><lua code='format(name)'>Hello, %s!</lua></p>
//
// The content of each element is bound to the Lua global data, the code
// attribute runs, and the element (tags included) is replaced by the final
// value of data, written without escaping. Everything outside reserved
// elements is copied byte for byte.
//
// Elements may nest; inner elements resolve first and the outer element sees
// their results as its content. An element left open is closed at the end
// of the template and a close tag without an open element is copied as
// text. As in HTML, "<lua/>" opens an element like "<lua>". Reserved elements
// inside raw text (script, style, textarea, title) are not recognized.
//
// Values made visible to scripts with [Renderer.Insert] are shared by all
// renders, while globals assigned by scripts last for a single render.
package render
