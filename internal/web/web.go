// Package web serves the browser front-end of the relay.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the chat page at / and, when staticDir is set, the
// files under it at /static/.
func RegisterRoutes(r chi.Router, staticDir string) {
	r.Get("/", ServeIndex)
	if staticDir == "" {
		return
	}
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir)))
	r.Get("/static/*", fs.ServeHTTP)
}
