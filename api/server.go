// Package api provides the HTTP server for secfilings.
//
// It serves the search page, its static assets, and two read-only JSON
// lookups proxied to SEC EDGAR: company resolution and filing lists.
package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/internal/config"
	"github.com/seenimoa/secfilings/internal/edgar"
	"github.com/seenimoa/secfilings/internal/filings"
	"github.com/seenimoa/secfilings/internal/infra"
	"github.com/seenimoa/secfilings/internal/logging"
	"github.com/seenimoa/secfilings/internal/lookup"
	"github.com/seenimoa/secfilings/internal/ui"
	"github.com/seenimoa/secfilings/web"
)

// Version is reported by /health. Set by the CLI from build flags.
var Version = "dev"

// Server is the HTTP server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	logger  *zap.Logger
	edgar   *edgar.Client
	lookup  *lookup.Service
	filings *filings.Client
	engine  *ui.Engine
	page    *template.Template
}

// NewServer creates a configured server with all routes and middleware.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	page, err := web.PageTemplate()
	if err != nil {
		return nil, fmt.Errorf("page template: %w", err)
	}

	client := NewEdgarClient(cfg.SEC, logger)
	srv := &Server{
		cfg:     cfg,
		logger:  logger,
		edgar:   client,
		lookup:  lookup.NewService(client, logger),
		filings: filings.NewClient(client, logger),
		page:    page,
	}
	srv.engine = ui.NewEngine(srv.lookup, srv.filings)
	srv.router = srv.buildRouter()
	return srv, nil
}

// NewEdgarClient builds the EDGAR client from SEC settings.
func NewEdgarClient(cfg config.SECConfig, logger *zap.Logger) *edgar.Client {
	return edgar.NewClient(
		edgar.WithHTTPClient(infra.NewHTTPClient(cfg.Timeout())),
		edgar.WithUserAgent(cfg.UserAgent),
		edgar.WithTickersURL(cfg.TickersURL),
		edgar.WithSubmissionsURL(cfg.SubmissionsURL),
		edgar.WithFeedURL(cfg.FeedURL),
		edgar.WithLogger(logger.Named("edgar")),
	)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr), zap.Strings("cors_origins", s.cfg.API.CORSOrigins))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-done:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := s.cfg.API.CORSOrigins
	r.Use(s.originGuard(origins))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/cik-lookup", s.handleCIKLookup)
	r.Get("/filings", s.handleFilings)

	// Search page
	r.Get("/", s.handleIndex)
	r.Handle("/static/*", staticHandler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// originGuard rejects cross-origin requests from origins outside allowed.
// Requests without an Origin header and same-origin requests pass.
func (s *Server) originGuard(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || sameOrigin(r, origin) || originAllowed(allowed, origin) {
				next.ServeHTTP(w, r)
				return
			}
			s.writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Not allowed by CORS"})
		})
	}
}

func sameOrigin(r *http.Request, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host != "" && u.Host == r.Host
}

func originAllowed(allowed []string, origin string) bool {
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// staticHandler serves the embedded CSS/JS.
func staticHandler() http.Handler {
	files := http.StripPrefix("/static/", http.FileServerFS(web.StaticFS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
