package api

import (
	"encoding/json"
	"net/http"

	"github.com/mwestrik/siteqa"
)

type ingestRequest struct {
	BaseURL          string `json:"base_url"`
	MaxPages         int    `json:"max_pages"`
	MaxDepth         *int   `json:"max_depth"`
	MaxCharsPerChunk int    `json:"max_chars_per_chunk"`
	ChunkOverlap     *int   `json:"chunk_overlap"`
}

// task builds a CrawlTask from the request, filling in defaults for
// omitted fields. MaxDepth and ChunkOverlap use pointers so an explicit
// zero survives.
func (req *ingestRequest) task() *siteqa.CrawlTask {
	task := &siteqa.CrawlTask{
		BaseURL:          req.BaseURL,
		MaxPages:         req.MaxPages,
		MaxDepth:         DefaultMaxDepth,
		MaxCharsPerChunk: req.MaxCharsPerChunk,
		ChunkOverlap:     DefaultChunkOverlap,
	}
	if task.MaxPages == 0 {
		task.MaxPages = DefaultMaxPages
	}
	if req.MaxDepth != nil {
		task.MaxDepth = *req.MaxDepth
	}
	if task.MaxCharsPerChunk == 0 {
		task.MaxCharsPerChunk = DefaultMaxCharsPerChunk
	}
	if req.ChunkOverlap != nil {
		task.ChunkOverlap = *req.ChunkOverlap
	}
	return task
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.pipeline.Run(r.Context(), req.task())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCrawlTest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, report, err := s.crawler.Crawl(r.Context(), req.task())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"crawledUrls": emptyIfNil(report.CrawledURLs),
		"failedUrls":  emptyIfNil(report.FailedURLs),
	})
}

type retrieveRequest struct {
	Query    string `json:"query"`
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

func (req *retrieveRequest) text() string {
	if req.Query != "" {
		return req.Query
	}
	return req.Question
}

func (req *retrieveRequest) topK() int {
	if req.TopK == 0 {
		return DefaultTopK
	}
	return req.TopK
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results, err := s.retriever.Retrieve(r.Context(), req.text(), req.topK())
	if err != nil {
		errorResponse(w, err)
		return
	}

	if results == nil {
		results = []siteqa.RetrievedResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	answer, err := s.retriever.Ask(r.Context(), req.text(), req.topK())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chunks": stats.Chunks,
		"dbPath": s.dbPath,
	})
}

// decodeJSON decodes the request body into v, writing a 400 and returning
// false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// errorResponse maps a domain error to an HTTP status and writes it as a
// JSON error body.
func errorResponse(w http.ResponseWriter, err error) {
	jsonError(w, siteqa.ErrorMessage(err), statusFromCode(siteqa.ErrorCode(err)))
}

func statusFromCode(code string) int {
	switch code {
	case siteqa.EINVALID:
		return http.StatusBadRequest
	case siteqa.ENOTFOUND:
		return http.StatusNotFound
	case siteqa.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
