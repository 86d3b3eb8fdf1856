package server

import (
	"embed"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed static/*
var staticFiles embed.FS

// LoginPageHandler serves the unauthenticated entry point (GET /).
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return s.servePage("login.html")
}

// servePage serves an embedded HTML page by name.
func (s *Server) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := staticFiles.ReadFile("static/" + name)
		if err != nil {
			log.Err(err).Str("page", name).Msg("Embedded page missing")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_, _ = w.Write(data)
	}
}

// writePage writes an inline HTML response. Used for the flow's plain
// success/failure messages.
func writePage(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = w.Write([]byte(body))
}
