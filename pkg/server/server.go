// Package server serves the folio gallery over HTTP.
//
// Routes:
//
//	GET /                     full gallery page
//	GET /gallery?width=W      two-column fragment for container width W
//	GET /api/layout?width=W   JSON column assignment (ETag / If-None-Match)
//	GET /api/media?url=U      JSON classification and embed for one URL
//	GET /healthz              liveness probe
//
// The width query value is the container-width signal. Missing, malformed or
// non-positive widths are not errors: they degrade to the configured default.
// The item list is fixed for the lifetime of a Server, so every response is a
// pure function of the width and can be cached by its entity tag.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/folio/pkg/buildinfo"
	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/config"
	ferrors "github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/masonry"
	"github.com/matzehuels/folio/pkg/media"
	"github.com/matzehuels/folio/pkg/site"
	"github.com/matzehuels/folio/pkg/work"
)

const (
	// FragmentPath is the route the page re-fetches columns from on resize.
	FragmentPath = "/gallery"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves one fixed list of work items.
type Server struct {
	cfg      *config.Config
	items    []work.Item
	balancer *masonry.Balancer
	renderer *site.Renderer
	cache    cache.Cache
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache sets the cache for rendered responses. The default is an
// in-memory LRU sized from the server configuration.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
	}
}

// New creates a Server for items. cfg must already be validated.
func New(cfg *config.Config, items []work.Item, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:      cfg,
		items:    items,
		balancer: cfg.Balancer(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		c, err := cache.NewLRUCache(cfg.Server.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = c
	}

	r, err := site.NewRenderer(site.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.renderer = r
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(FragmentPath, s.handleGallery)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Get("/media", s.handleMedia)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", srv.Addr, "items", len(s.items))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the response cache.
func (s *Server) Close() error { return s.cache.Close() }

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	width := s.width(r)
	s.serveCached(w, r, "page", width, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return s.renderer.Page(buf, site.Page{
			Title:        s.cfg.Site.Title,
			Tagline:      s.cfg.Site.Tagline,
			Columns:      s.balancer.LayoutContext(r.Context(), s.items, width),
			FragmentPath: FragmentPath,
		})
	})
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	width := s.width(r)
	s.serveCached(w, r, "gallery", width, "text/html; charset=utf-8", func(buf *bytes.Buffer) error {
		return s.renderer.Gallery(buf, s.balancer.LayoutContext(r.Context(), s.items, width))
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	width := s.width(r)
	s.serveCached(w, r, "layout", width, "application/json", func(buf *bytes.Buffer) error {
		l := s.balancer.LayoutContext(r.Context(), s.items, width).Export()
		l.ETag = masonry.ETag(s.items, width)
		data, err := masonry.MarshalLayout(l)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	})
}

// mediaError is the body of an unresolvable classification.
type mediaError struct {
	Error errorBody   `json:"error"`
	Media media.Media `json:"media"`
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if strings.TrimSpace(raw) == "" {
		s.writeError(w, r, ferrors.New(ferrors.ErrCodeInvalidInput, "missing url query parameter"))
		return
	}

	m := media.Resolve(raw)
	if m.Kind != media.KindNone && !m.Renderable() {
		_, err := media.ResolveEmbed(raw, m.Kind)
		s.logger.Debug("unresolvable embed", "url", raw, "err", err)
		writeJSON(w, ferrors.HTTPStatus(err), mediaError{Error: newErrorBody(err), Media: m})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"items":   len(s.items),
	})
}

// =============================================================================
// Helpers
// =============================================================================

// width reads the container width from the query string, normalized by the
// balancer. Unparseable values fall back to the default.
func (s *Server) width(r *http.Request) float64 {
	w, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		w = 0
	}
	return s.balancer.ContainerWidth(w)
}

// serveCached answers from the response cache when possible, honoring
// If-None-Match, and renders and stores the body otherwise.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, kind string, width float64, contentType string, render func(*bytes.Buffer) error) {
	etag := masonry.ETag(s.items, width)
	w.Header().Set("ETag", etag)

	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	key := cache.Key(kind, etag)
	body, hit, err := s.cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
	}
	if !hit {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			s.writeError(w, r, ferrors.Wrap(ferrors.ErrCodeInternal, err, "render %s", kind))
			return
		}
		body = buf.Bytes()
		if err := s.cache.Set(r.Context(), key, body, 0); err != nil {
			s.logger.Warn("cache set failed", "key", key, "err", err)
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// etagMatch implements the weak comparison of If-None-Match.
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

type errorBody struct {
	Code    ferrors.Code `json:"code"`
	Message string       `json:"message"`
}

func newErrorBody(err error) errorBody {
	code := ferrors.GetCode(err)
	if code == "" {
		code = ferrors.ErrCodeInternal
	}
	return errorBody{Code: code, Message: ferrors.UserMessage(err)}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := ferrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, map[string]errorBody{"error": newErrorBody(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
