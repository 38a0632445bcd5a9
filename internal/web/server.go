package web

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/kondate/internal/domain"
	"github.com/vbonduro/kondate/internal/service"
	"github.com/vbonduro/kondate/internal/session"
)

const sessionCookie = "kondate_session"

const (
	defaultWriteTimeout = 120 * time.Second
	// writeMargin covers rendering after the suggestion call returns.
	writeMargin = 30 * time.Second
)

type Server struct {
	service   *service.MenuService
	templates fs.FS
	sessions  *session.Store
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
	now       func() time.Time

	writeTimeout time.Duration
}

func NewServer(svc *service.MenuService, tmpl fs.FS, sessions *session.Store, logger *slog.Logger) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		sessions:  sessions,
		mux:       http.NewServeMux(),
		logger:    logger,
		now:       time.Now,

		writeTimeout: defaultWriteTimeout,
	}
	s.tmplFuncs = template.FuncMap{
		"date":        func(t time.Time) string { return t.Format(domain.DateLayout) },
		"qty":         func(q float64) string { return strconv.FormatFloat(q, 'f', -1, 64) },
		"daysLeft":    func(item *domain.FoodItem) int { return item.DaysUntilExpiry(s.now()) },
		"expiryClass": func(item *domain.FoodItem) string { return expiryClass(item.DaysUntilExpiry(s.now())) },
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("POST /items", s.handleAddItem)
	s.mux.HandleFunc("POST /reset", s.handleReset)
	s.mux.HandleFunc("POST /suggestions", s.handleSuggest)
	s.mux.HandleFunc("POST /suggestions/select", s.handleSelectSuggestion)
	s.mux.HandleFunc("POST /suggestions/confirm", s.handleConfirmConsume)
	s.mux.HandleFunc("POST /suggestions/cancel", s.handleCancelConsume)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline'; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// SetSuggestTimeout sizes the response write timeout so a suggestion that
// takes up to d still reaches the browser.
func (s *Server) SetSuggestTimeout(d time.Duration) {
	s.writeTimeout = max(defaultWriteTimeout, d+writeMargin)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr, "write_timeout", s.writeTimeout)
	return s.httpServer(addr).ListenAndServe()
}

func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  120 * time.Second,
	}
}

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	sess, created := s.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// redirectHome finishes a POST with a 303 so a reload does not resubmit it.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, status int, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
// The file must contain exactly one {{define "name"}}...{{end}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// ParseFS registers both the file-basename template and any {{define}} blocks.
	// Find the {{define}} template: it is the one whose name is neither "" nor
	// the file basename.
	basename := file
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		basename = file[idx+1:]
	}
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != basename {
			return t.Execute(w, data)
		}
	}
	return tmpl.ExecuteTemplate(w, basename, data)
}

// expiryClass buckets the remaining days for row highlighting.
func expiryClass(days int) string {
	switch {
	case days < 0:
		return "expired"
	case days <= 2:
		return "soon"
	case days <= 7:
		return "week"
	default:
		return "ok"
	}
}
