package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	pageTemplate     = "page.html"
	notFoundTemplate = "not_found.html"
)

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

// pageRenderer holds the parsed page templates.
type pageRenderer struct {
	templates map[string]*template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	p := &pageRenderer{templates: make(map[string]*template.Template)}
	for _, name := range []string{pageTemplate, notFoundTemplate} {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("[pageRenderer] %s: %w", name, err)
		}
		p.templates[name] = tmpl
	}
	return p, nil
}

// render executes the template into a buffer first so a failing template
// never leaves a half written page behind.
func (p *pageRenderer) render(w http.ResponseWriter, name string, status int, data any) {
	var buf bytes.Buffer
	if err := p.templates[name].Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
