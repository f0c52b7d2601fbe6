package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aretw0/semtoken"
	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/aretw0/semtoken/pkg/vocabulary"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodyBytes caps request bodies; descriptors are small documents.
const maxBodyBytes = 1 << 20

// Studio is the subset of *semtoken.Studio served over HTTP.
type Studio interface {
	Render(d domain.TokenDescriptor) string
	Activate(d domain.TokenDescriptor) (domain.TokenDescriptor, []string)
	Catalog() *vocabulary.Catalog
	SaveDraft(ctx context.Context, d domain.TokenDescriptor) (domain.DraftInfo, error)
	LoadDraft(ctx context.Context, id string) (domain.TokenDescriptor, error)
	ListDrafts(ctx context.Context) ([]domain.DraftInfo, error)
	DeleteDraft(ctx context.Context, id string) error
	Publish(ctx context.Context, d domain.TokenDescriptor) (semtoken.PublishResult, error)
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Studio Studio
	Logger *slog.Logger

	metrics    http.Handler
	corsOrigin string
	compress   bool
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the logger used by handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics serves h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithCompression gzips responses for clients that accept it.
func WithCompression() Option {
	return func(s *Server) {
		s.compress = true
	}
}

// Spec parses the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates the HTTP handler for a Studio.
// Requests to documented operations are validated against the OpenAPI document.
func NewHandler(studio Studio, opts ...Option) (http.Handler, error) {
	s := &Server{
		Studio:     studio,
		Logger:     slog.New(slog.DiscardHandler),
		corsOrigin: "*",
	}
	for _, opt := range opts {
		opt(s)
	}

	doc, err := Spec()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo(doc))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.validate(router))
		r.Post("/render", s.Render)
		r.Post("/activate", s.Activate)
		r.Get("/ontologies", s.ListOntologies)
		r.Get("/drafts", s.ListDrafts)
		r.Post("/drafts", s.SaveDraft)
		r.Get("/drafts/{id}", s.LoadDraft)
		r.Delete("/drafts/{id}", s.DeleteDraft)
		r.Post("/publish", s.Publish)
	})

	var h http.Handler = r
	if s.compress {
		h = handlers.CompressHandler(h)
	}
	return s.enableCORS(h), nil
}

// validate rejects requests that do not match the OpenAPI document.
func (s *Server) validate(router routers.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

			route, params, err := router.FindRoute(r)
			if err != nil {
				status := http.StatusNotFound
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					status = http.StatusMethodNotAllowed
				}
				s.writeError(w, status, err)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				s.Logger.Warn("request rejected", "path", r.URL.Path, "err", err)
				s.writeError(w, http.StatusBadRequest, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	if s.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>semtoken API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Render handles POST /render.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDescriptor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/turtle; charset=utf-8")
	_, _ = io.WriteString(w, s.Studio.Render(d))
}

// Activate handles POST /activate.
func (s *Server) Activate(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDescriptor(w, r)
	if !ok {
		return
	}
	out, vocab := s.Studio.Activate(d)
	s.writeJSON(w, http.StatusOK, struct {
		Descriptor domain.TokenDescriptor `json:"descriptor"`
		Vocab      []string               `json:"vocab"`
	}{out, vocab})
}

// ListOntologies handles GET /ontologies.
func (s *Server) ListOntologies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Studio.Catalog().List())
}

// ListDrafts handles GET /drafts.
func (s *Server) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.Studio.ListDrafts(r.Context())
	if err != nil {
		s.fail(w, "ListDrafts", err)
		return
	}
	if drafts == nil {
		drafts = []domain.DraftInfo{}
	}
	s.writeJSON(w, http.StatusOK, drafts)
}

// SaveDraft handles POST /drafts.
func (s *Server) SaveDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDescriptor(w, r)
	if !ok {
		return
	}
	info, err := s.Studio.SaveDraft(r.Context(), d)
	if err != nil {
		s.fail(w, "SaveDraft", err)
		return
	}
	w.Header().Set("Location", "/drafts/"+url.PathEscape(info.ID))
	s.writeJSON(w, http.StatusCreated, info)
}

// LoadDraft handles GET /drafts/{id}.
func (s *Server) LoadDraft(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.Studio.LoadDraft(r.Context(), id)
	if err != nil {
		s.fail(w, "LoadDraft", err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

// DeleteDraft handles DELETE /drafts/{id}.
func (s *Server) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Studio.DeleteDraft(r.Context(), id); err != nil {
		s.fail(w, "DeleteDraft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish handles POST /publish.
func (s *Server) Publish(w http.ResponseWriter, r *http.Request) {
	d, ok := s.decodeDescriptor(w, r)
	if !ok {
		return
	}
	res, err := s.Studio.Publish(r.Context(), d)
	if err != nil {
		s.fail(w, "Publish", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(doc *openapi3.T) http.HandlerFunc {
	apiVersion := "unknown"
	if doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"app":         "semtoken-http",
			"version":     semtoken.Version,
			"api_version": apiVersion,
		})
	}
}

// -- Helpers --

// draftID reads the {id} segment. Draft IDs are path-escaped token names, so a
// client sends them escaped once more and the segment is decoded here.
func draftID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func (s *Server) decodeDescriptor(w http.ResponseWriter, r *http.Request) (domain.TokenDescriptor, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return domain.TokenDescriptor{}, false
	}
	d, err := domain.DecodeDraft(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return domain.TokenDescriptor{}, false
	}
	return d, true
}

// fail maps Studio errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDraftNameRequired), errors.Is(err, domain.ErrInvalidDraft):
		status = http.StatusBadRequest
	case errors.Is(err, semtoken.ErrNoStore), errors.Is(err, semtoken.ErrNoPublisher):
		status = http.StatusNotImplemented
	case op == "Publish":
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	}
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
