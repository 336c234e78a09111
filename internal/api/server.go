// Package api exposes the matcher, predictor and assistant over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/spigell/jobmate/docs"
	"github.com/spigell/jobmate/internal/assistant"
	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/matcher"
)

const (
	serviceName           = "JobMate AI ML Service"
	engineName            = "tfidf"
	defaultMaxUploadBytes = 5 << 20
)

// Config is the HTTP surface configuration.
type Config struct {
	Environment      string
	AllowedOrigins   []string
	SharedSecret     string
	RequireSignature bool
	MaxUploadBytes   int64
	MaxLogLength     int
}

// Server holds the request handlers and the read-only engines behind them.
type Server struct {
	cfg       Config
	matcher   *matcher.Matcher
	predictor *career.Predictor
	assistant *assistant.Assistant
	logger    *zap.Logger
}

// New builds a Server. The engines are constructed once by the caller and
// shared by every request.
func New(cfg Config, m *matcher.Matcher, p *career.Predictor, a *assistant.Assistant, log *zap.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = 200
	}

	return &Server{
		cfg:       cfg,
		matcher:   m,
		predictor: p,
		assistant: a,
		logger:    logger.WithFields(log),
	}
}

// SignatureRequired reports whether ML routes check X-Signature.
func (s *Server) SignatureRequired() bool {
	return s.cfg.RequireSignature && s.cfg.SharedSecret != ""
}

// Routes returns the chi router with middleware and all endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", headerSignature, headerTimestamp},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/ml", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/index.html", http.StatusFound)
		})

		r.Group(func(r chi.Router) {
			if s.SignatureRequired() {
				r.Use(s.requireSignature(s.cfg.SharedSecret))
			}

			r.Post("/explain-match", s.handleExplainMatch)
			r.Post("/ats-score", s.handleATSScore)
			r.Post("/career-path", s.handleCareerPath)
			r.Post("/chat", s.handleChat)
			r.Post("/resume/extract", s.handleResumeExtract)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Envelope{Error: "Method not allowed"})
	})

	return r
}
