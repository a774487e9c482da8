// Package http provides the web UI: login/register, the chat view and the
// expense/balance forms. The process serves a single interactive user, so
// session state is one in-memory chat.Session owned by the server.
package http

import (
	"fmt"
	"html/template"
	"net/http"

	"smartspend/internal/auth"
	"smartspend/internal/chat"
	applog "smartspend/internal/log"
	"smartspend/internal/storage"
	"smartspend/web"
)

type Server struct {
	http.Server
	templates *template.Template
	orch      *chat.Orchestrator
	authSvc   *auth.Service
	store     *storage.SQLiteRepository
	session   *chat.Session
	logger    *applog.Logger
}

func NewServer(addr string, orch *chat.Orchestrator, authSvc *auth.Service, store *storage.SQLiteRepository, logger *applog.Logger) (*Server, error) {
	templates, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: templates,
		orch:      orch,
		authSvc:   authSvc,
		store:     store,
		session:   chat.NewSession(),
		logger:    logger.WithComponent(applog.ComponentHTTP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("POST /chat", s.requireLogin(s.handleChat))
	mux.HandleFunc("POST /expenses", s.requireLogin(s.handleAddExpense))
	mux.HandleFunc("POST /balance", s.requireLogin(s.handleAddBalance))
	mux.HandleFunc("POST /analyze", s.requireLogin(s.handleAnalyze))
	mux.HandleFunc("POST /advice", s.requireLogin(s.handleAdvice))
	mux.Handle("GET /static/", http.FileServer(http.FS(web.StaticFS)))

	handler := applog.Middleware(logger)(securityHeaders(mux))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s, nil
}

// requireLogin redirects unauthenticated requests back to the login view.
func (s *Server) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.session.LoggedIn {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// securityHeaders sets a conservative default header set on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}
