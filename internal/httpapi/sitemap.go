package httpapi

import (
	"html/template"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/gorilla/mux"
)

// Endpoint is one registered route as listed by the sitemap.
type Endpoint struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
	// Link is set for GET routes without path variables.
	Link bool `json:"-"`
}

var routeVarPattern = regexp.MustCompile(`\{(\w+):[^}]+\}`)

type sitemapResponse struct {
	Endpoints []Endpoint `json:"endpoints"`
}

var sitemapTemplate = template.Must(template.New("sitemap").Parse(`<!DOCTYPE html>
<html>
<head><title>Holocron API</title></head>
<body style="text-align: center;">
<h1>Holocron API</h1>
<p>Registered endpoints:</p>
<ul style="text-align: left; display: inline-block;">
{{- range .}}
<li>{{range $i, $m := .Methods}}{{if $i}}, {{end}}{{$m}}{{end}} {{if .Link}}<a href="{{.Path}}">{{.Path}}</a>{{else}}{{.Path}}{{end}}</li>
{{- end}}
</ul>
</body>
</html>
`))

// endpoints walks router and groups the registered methods by path template.
func endpoints(router *mux.Router) ([]Endpoint, error) {
	byPath := map[string][]string{}
	var order []string

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ANY"}
		}
		path = routeVarPattern.ReplaceAllString(path, "{$1}")
		if _, seen := byPath[path]; !seen {
			order = append(order, path)
		}
		byPath[path] = append(byPath[path], methods...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(order)
	result := make([]Endpoint, 0, len(order))
	for _, path := range order {
		methods := byPath[path]
		sort.Strings(methods)
		hasGet := false
		for _, m := range methods {
			if m == http.MethodGet {
				hasGet = true
			}
		}
		result = append(result, Endpoint{
			Path:    path,
			Methods: methods,
			Link:    hasGet && !strings.Contains(path, "{"),
		})
	}
	return result, nil
}

// sitemap lists every route of router, as HTML or as JSON when the client asks for it.
func sitemap(router *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := endpoints(router)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			writeJSON(w, http.StatusOK, sitemapResponse{Endpoints: list})
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = sitemapTemplate.Execute(w, list)
	}
}
