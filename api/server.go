// Package api exposes the ingestion and question answering operations
// over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/ingest"
	"github.com/mwestrik/siteqa/retrieve"
)

// Default request parameters, applied when the request body omits them.
const (
	DefaultMaxPages         = 50
	DefaultMaxDepth         = 3
	DefaultMaxCharsPerChunk = 800
	DefaultChunkOverlap     = 100
	DefaultTopK             = 5
)

// maxBodyBytes caps request body size.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	pipeline  *ingest.Pipeline
	retriever *retrieve.Retriever
	crawler   ingest.Crawler
	store     siteqa.VectorStore
	dbPath    string
	log       *slog.Logger
}

// NewServer creates and configures the HTTP server. The crawler is used
// directly by the crawl-test endpoint; ingestion goes through the
// pipeline.
func NewServer(pipeline *ingest.Pipeline, retriever *retrieve.Retriever, crawler ingest.Crawler, store siteqa.VectorStore, dbPath string, log *slog.Logger) *Server {
	s := &Server{
		pipeline:  pipeline,
		retriever: retriever,
		crawler:   crawler,
		store:     store,
		dbPath:    dbPath,
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/ingest", s.handleIngest)
	r.Post("/api/crawl/test", s.handleCrawlTest)
	r.Post("/api/retrieve", s.handleRetrieve)
	r.Post("/api/ask", s.handleAsk)
	r.Get("/api/stats", s.handleStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
