package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"videoshare/internal/format"
	"videoshare/internal/youtube"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "watch", "channel", "upload", "notfound"}

// Renderer renders one template set per page, each sharing the layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer(now func() time.Time) (*Renderer, error) {
	funcs := template.FuncMap{
		"views":       format.Views,
		"subscribers": format.Subscribers,
		"timeAgo":     func(t time.Time) string { return format.TimeAgo(t, now()) },
		"isEmbed":     youtube.IsEmbed,
		"playerURL":   youtube.PlayerURL,
		"lower":       strings.ToLower,
		"initial": func(s string) string {
			for _, r := range s {
				return strings.ToUpper(string(r))
			}
			return "?"
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
