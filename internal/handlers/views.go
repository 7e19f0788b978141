package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageData is the model of every template. Fields a page does not use stay zero.
type pageData struct {
	Title   string
	Page    models.Page
	Nav     services.Nav
	User    *models.User
	IsAdmin bool
	Notice  *notice
	Actions []services.QuickAction

	// CSRFToken goes into a hidden field of every POST form.
	CSRFToken string

	Error      string
	ErrorField string

	// Sign-in, sign-up and record forms
	Values map[string]string
	Fields []models.Field
	Next   models.Page

	Dashboard      *services.Dashboard
	RefreshSeconds int
}

var pageTemplates = []string{"index", "signin", "signup", "form", "dashboard", "error"}

// Views holds one template set per page, each sharing the layout.
type Views struct {
	pages map[string]*template.Template
}

func ParseViews() (*Views, error) {
	funcs := template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.MarshalIndent(v, "", "  ")
			return string(b), err
		},
		"value": func(values map[string]string, key string) string {
			return values[key]
		},
		"selected": func(values map[string]string, key, option string) bool {
			return values[key] == option
		},
		"genders": func() []string {
			return models.GenderOptions
		},
		"hasPanel": func(d *services.Dashboard, p string) bool {
			if d == nil {
				return false
			}
			for _, panel := range d.Panels {
				if string(panel) == p {
					return true
				}
			}
			return false
		},
	}

	v := &Views{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (v *Views) render(w http.ResponseWriter, status int, name string, data *pageData, logger log.Logger) {
	t, ok := v.pages[name]
	if !ok {
		level.Error(logger).Log("msg", "unknown template", "name", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		level.Error(logger).Log("msg", "failed to render template", "name", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Static serves the stylesheet and dashboard script.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
