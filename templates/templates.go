// Package templates holds the server rendered views.
package templates

import (
	"embed"
	"html/template"

	"cyberdesk-backend/utils"
)

//go:embed *.html
var files embed.FS

// Funcs are the helpers available to every view.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"displayDate": utils.FormatDisplayDate,
		"inc": func(i int) int {
			return i + 1
		},
	}
}

// Parse loads every view. Pages share the "header" and "footer" blocks
// defined in layout.html.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.html")
}
