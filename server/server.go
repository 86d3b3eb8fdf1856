package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-gmail-sender/gmail"
	"github.com/jrsteele09/go-gmail-sender/googleauth"
	"github.com/jrsteele09/go-gmail-sender/internal/config"
	"github.com/jrsteele09/go-gmail-sender/internal/metrics"
	"github.com/jrsteele09/go-gmail-sender/server/ratelimit"
	"github.com/jrsteele09/go-gmail-sender/server/sessionstore"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	auth      *googleauth.Service
	mail      *gmail.Client
	sessions  sessionstore.Repo
	limiter   ratelimit.Limiter
	collector metrics.Collector
}

func New(cfg config.Config, authService *googleauth.Service, mailClient *gmail.Client, sessions sessionstore.Repo, limiter ratelimit.Limiter, collector metrics.Collector) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		auth:      authService,
		mail:      mailClient,
		sessions:  sessions,
		limiter:   limiter,
		collector: collector,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
