// Package publish renders compositions into standalone static documents and
// delivers them to a presentation surface.
package publish

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"pagebuilder/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const publishedTemplate = "published.html"

// Document is a rendered, self-contained page.
type Document struct {
	Title string
	HTML  []byte
}

// Renderer turns a composition into a Document. Every user-supplied string
// goes through html/template's contextual escaping, so element identifiers and
// form values always render as inert text.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer returns a renderer backed by the embedded template.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: templates}
}

type pageData struct {
	Title    string
	Elements []string
	Form     domain.FormData
}

// Render produces the published document for c. Output depends only on
// c.Name, c.Elements and c.FormData and is byte-identical across calls.
func (r *Renderer) Render(c domain.Composition) (Document, error) {
	var buf bytes.Buffer
	data := pageData{
		Title:    c.Name,
		Elements: c.Elements,
		Form:     c.FormData,
	}
	if err := r.tmpl.ExecuteTemplate(&buf, publishedTemplate, data); err != nil {
		return Document{}, fmt.Errorf("render published layout: %w", err)
	}
	return Document{Title: c.Name, HTML: buf.Bytes()}, nil
}
