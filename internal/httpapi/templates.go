package httpapi

import (
	"embed"
	"html/template"
	"strconv"

	"leaddash/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"columns": func() []string { return domain.Columns },
	"num":     func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	// link joins a path with an already encoded query string.
	"link": func(path, query string) template.URL {
		if query == "" {
			return template.URL(path)
		}
		return template.URL(path + "?" + query)
	},
}).ParseFS(templateFS, "templates/*.html"))

type errorPage struct {
	Code      string
	Message   string
	RequestID string
}
