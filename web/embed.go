// Package web embeds the search page template and its static assets so the
// server ships as a single binary.
//
// Usage in the API server:
//
//	tmpl, err := web.PageTemplate()
//	static := web.StaticFS() // io/fs.FS rooted at static/
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
)

//go:embed templates static
var assets embed.FS

// PageName is the name of the search page template.
const PageName = "index.html.tmpl"

// PageTemplate parses the embedded search page.
func PageTemplate() (*template.Template, error) {
	return template.ParseFS(assets, "templates/"+PageName)
}

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}
