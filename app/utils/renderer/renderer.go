package renderer

import (
	"github.com/unrolled/render"
)

// New returns the JSON renderer shared by every handler. Output is indented outside production.
func New(production bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   !production,
		UnEscapeHTML: true,
	})
}
