// Package render abstracts HTML rendering behind a one-method interface.
//
// Handlers hand a template name and a data mapping to a Renderer and get
// markup written to the response — they never touch html/template directly.
// That keeps rendering swappable: production uses Templates (parsed from a
// directory at startup), tests use a stub that records what would have been
// rendered.
package render

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
)

// Renderer renders a named template with the given data mapping.
type Renderer interface {
	Render(w http.ResponseWriter, name string, data map[string]any) error
}

// Templates is the html/template-backed Renderer.
//
// Templates are parsed once at startup (expensive) and executed per request
// (cheap). Every *.html file in the directory is parsed together so pages can
// share a layout via {{template}} / {{define}} composition.
type Templates struct {
	tmpl *template.Template
}

// NewTemplates parses every *.html file under dir.
func NewTemplates(dir string) (*Templates, error) {
	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: parsing templates in %s: %w", dir, err)
	}
	return &Templates{tmpl: tmpl}, nil
}

// Render executes the named template into the response.
//
// The Content-Type header must go out before the first byte of the body —
// once ExecuteTemplate starts writing, headers are locked in.
func (t *Templates) Render(w http.ResponseWriter, name string, data map[string]any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render: executing template %s: %w", name, err)
	}
	return nil
}
