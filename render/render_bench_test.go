package render

import (
	"strconv"
	"strings"
	"testing"
)

func benchmarkTemplate(slots int) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html><html><body><ul>")

	for range slots {
		sb.WriteString(`<li class="item"><lua code="format(name)">hello %s</lua></li>`)
	}

	sb.WriteString("</ul></body></html>")

	return sb.String()
}

func BenchmarkRender(b *testing.B) {
	for _, slots := range []int{0, 1, 10, 100} {
		b.Run("slots="+strconv.Itoa(slots), func(b *testing.B) {
			r := New()
			_ = r.Insert("name", "bench")
			tmpl := benchmarkTemplate(slots)

			b.SetBytes(int64(len(tmpl)))
			b.ReportAllocs()

			for b.Loop() {
				_, err := r.Render(b.Context(), tmpl)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRenderEach(b *testing.B) {
	items := make([]any, 100)
	for i := range items {
		items[i] = map[string]any{"id": i, "label": "row"}
	}

	r := New()
	_ = r.Insert("items", items)
	tmpl := `<table><lua code="each(items)"><tr><td>$id</td><td>$label</td></tr></lua></table>`

	b.ReportAllocs()

	for b.Loop() {
		_, err := r.Render(b.Context(), tmpl)
		if err != nil {
			b.Fatal(err)
		}
	}
}
