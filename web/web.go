// Package web embeds the server-rendered HTML pages.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page. Template names are the base file
// names ("users_page.html", ...).
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
