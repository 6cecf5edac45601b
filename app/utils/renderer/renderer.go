package renderer

import (
	"html/template"

	"github.com/unrolled/render"
)

// New builds the renderer used for both JSON API responses and the HTML
// page shells under viewsDir.
func New(viewsDir string, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     viewsDir,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: development,
		Funcs: []template.FuncMap{
			{
				"langLabel": func(lang string) string {
					if lang == "en" {
						return "EN"
					}
					return "TR"
				},
			},
		},
	})
}
