package server

import "net/http"

func (s *Server) initRoutes() {
	// Entry point and authorization flow
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteGoogleLogin, ChainMiddleware(s.GoogleLoginHandler(), s.HTMLMiddleware(s.WithSession())...))
	s.RegisterRouteFunc("GET "+RouteOAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.HTMLMiddleware(s.WithSession())...))
	s.RegisterRouteFunc("GET "+RouteRevoke, ChainMiddleware(s.RevokeHandler(), s.HTMLMiddleware(s.WithSession())...))

	// Mail routes (compose form is gated; the send handler re-checks on its own)
	s.RegisterRouteFunc("GET "+RouteEmailForm, ChainMiddleware(s.EmailFormHandler(), s.HTMLMiddleware(s.WithSession(), s.RequireCredential())...))
	s.RegisterRouteFunc("POST "+RouteSendEmail, ChainMiddleware(s.SendEmailHandler(), s.HTMLMiddleware(s.WithSession())...))

	// Metrics exposition, when the collector provides a handler
	if provider, ok := s.collector.(interface{ Handler() http.Handler }); ok {
		s.RegisterRouteHandler("GET "+RouteMetrics, provider.Handler())
	}
}
