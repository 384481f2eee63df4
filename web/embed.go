package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static/*
var content embed.FS

// PageTemplate is the name of the single page template
const PageTemplate = "home.html"

// ParseTemplates parses the embedded page templates with funcs available
func ParseTemplates(funcs template.FuncMap) (*template.Template, error) {
	templates, err := fs.Sub(content, "templates")
	if err != nil {
		return nil, err
	}
	return template.New("").Funcs(funcs).ParseFS(templates, "*.html")
}

// Static serves the stylesheet and placeholder icons
func Static() http.FileSystem {
	static, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(static)
}
