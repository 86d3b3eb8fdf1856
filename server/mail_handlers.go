package server

import (
	"fmt"
	"html"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-gmail-sender/gmail"
	"github.com/jrsteele09/go-gmail-sender/internal/metrics"
)

// EmailFormHandler serves the compose form (GET /email-form). The route
// sits behind RequireCredential.
func (s *Server) EmailFormHandler() http.HandlerFunc {
	return s.servePage("send-email.html")
}

// SendEmailHandler performs the delegated send (POST /send-email).
// Rate-limited per client identity, and it re-checks the credential
// itself rather than assuming the gate ran upstream. One send per
// request; retries are the caller's business. Never redirects.
func (s *Server) SendEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		allowed, err := s.limiter.Allow(ctx, clientIP(r))
		if err != nil {
			// Fail open: a broken limiter must not block the one user.
			log.Warn().Err(err).Msg("Rate limiter unavailable")
			allowed = true
		}
		if !allowed {
			s.collector.RateLimitRejected()
			http.Error(w, "Too many emails sent, try again later.", http.StatusTooManyRequests)
			return
		}

		session, ok := s.loadSession(r)
		if !ok || !session.Authenticated() {
			log.Warn().Msg("Send attempted without a session credential")
			s.collector.EmailSendCompleted(metrics.SendUnauthenticated)
			writePage(w, `<h2>You must be logged in to send an email.</h2>
        <a href="/">Go to Login</a>`)
			return
		}

		if err := r.ParseForm(); err != nil {
			s.collector.EmailSendCompleted(metrics.SendFailure)
			writePage(w, "<h2>Failed to send email.</h2><pre>invalid form data</pre>")
			return
		}

		msg := gmail.Message{
			To:      r.FormValue("to"),
			Subject: r.FormValue("subject"),
			Body:    r.FormValue("body"),
		}

		if err := s.mail.Send(ctx, session.Credential, msg); err != nil {
			log.Err(err).Msg("Email send failed")
			s.collector.EmailSendCompleted(metrics.SendFailure)
			writePage(w, fmt.Sprintf(`<h2>Failed to send email.</h2>
        <pre>%s</pre>
        <a href="/email-form">Try Again</a>`, html.EscapeString(err.Error())))
			return
		}

		s.collector.EmailSendCompleted(metrics.SendSuccess)
		writePage(w, fmt.Sprintf(`<h2>Email sent successfully via Gmail API!</h2>
        <p>To: %s</p>
        <p>Subject: %s</p>
        <a href="/email-form">Send Another</a>`, html.EscapeString(msg.To), html.EscapeString(msg.Subject)))
	}
}
