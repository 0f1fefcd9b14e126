// Package chi exposes the HTTP API: natural-language, structured, and
// conversational influencer search plus catalog and health endpoints.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/domain/catalog"
	"github.com/creatorlens/creatorlens/internal/domain/influencer"
	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
	"github.com/creatorlens/creatorlens/internal/metrics"
	chatuc "github.com/creatorlens/creatorlens/internal/usecase/chat"
	healthuc "github.com/creatorlens/creatorlens/internal/usecase/health"
	searchuc "github.com/creatorlens/creatorlens/internal/usecase/search"
)

// searchService is the hybrid search surface the handlers consume.
type searchService interface {
	AnalyzeAndSearch(ctx context.Context, query string, limit, offset int) (searchuc.Response, error)
	Hybrid(ctx context.Context, query string, snap filters.Snapshot, limit, offset int) ([]influencer.WithScore, int, error)
	GetByID(ctx context.Context, id string) (influencer.Influencer, error)
}

// chatService is the conversational search surface.
type chatService interface {
	Search(ctx context.Context, query, conversationID string, limit, offset int) (chatuc.Response, error)
}

// catalogReader serves the discovered filter vocabulary.
type catalogReader interface {
	Get(ctx context.Context) (catalog.Catalog, error)
	TrendingCategories(ctx context.Context) ([]string, error)
}

// healthService aggregates component checks.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes the public HTTP API.
type Server struct {
	search        searchService
	chat          chatService
	catalog       catalogReader
	health        healthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchService,
	chat chatService,
	cat catalogReader,
	health healthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		chat:    chat,
		catalog: cat,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInfluencerNotFound, http.StatusNotFound, "influencer_not_found"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, "search_unavailable"),
		sentinelHandler(domain.ErrAnalyzerUnavailable, http.StatusServiceUnavailable, "analyzer_unavailable"),
	}
	return s
}

// Router builds the chi mux with the standard middleware chain.
func (s *Server) Router() http.Handler {
	r := gochi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(jsonRecoverer(s.logger))
	r.Use(metrics.Middleware())

	r.Route("/api/v1", func(r gochi.Router) {
		r.Route("/influencers", func(r gochi.Router) {
			r.Post("/search", s.handleSearch)
			r.Post("/search/hybrid", s.handleHybridSearch)
			r.Post("/search/chat", s.handleChatSearch)
			r.Get("/trending/categories", s.handleTrendingCategories)
			r.Get("/{id}", s.handleGetInfluencer)
		})
		r.Get("/categories", s.handleCategories)
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// handleSearch handles POST /api/v1/influencers/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	resp, err := s.search.AnalyzeAndSearch(r.Context(), req.Query, req.Limit, req.Offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	limit := pageLimit(req.Limit)
	writeJSON(w, http.StatusOK, searchResponse{
		Results:             resultsToDTO(resp.Results),
		Total:               resp.Total,
		Limit:               limit,
		Offset:              req.Offset,
		HasMore:             hasMore(req.Offset, limit, resp.Total),
		Intent:              resp.Analysis.Intent,
		AppliedFilters:      snapshotToDTO(resp.Analysis.Snapshot),
		SuggestedCategories: resp.Analysis.SuggestedCategories,
		Confidence:          resp.Analysis.Confidence,
		SearchTimeMs:        resp.SearchTimeMs,
	})
}

// handleHybridSearch handles POST /api/v1/influencers/search/hybrid.
func (s *Server) handleHybridSearch(w http.ResponseWriter, r *http.Request) {
	var req hybridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" && req.Filters == nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "query or filters required")
		return
	}

	snap := snapshotFromDTO(req.Query, req.Filters)
	results, total, err := s.search.Hybrid(r.Context(), req.Query, snap, req.Limit, req.Offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	limit := pageLimit(req.Limit)
	writeJSON(w, http.StatusOK, hybridResponse{
		Results: resultsToDTO(results),
		Total:   total,
		Limit:   limit,
		Offset:  req.Offset,
		HasMore: hasMore(req.Offset, limit, total),
	})
}

// handleChatSearch handles POST /api/v1/influencers/search/chat.
func (s *Server) handleChatSearch(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}

	resp, err := s.chat.Search(r.Context(), req.Query, req.ConversationID, req.Limit, req.Offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Results:           resultsToDTO(resp.Results),
		Total:             resp.Total,
		ConversationID:    resp.ConversationID,
		HasMore:           hasMore(req.Offset, pageLimit(req.Limit), resp.Total),
		AppliedFilters:    snapshotToDTO(resp.AppliedFilters),
		RefinementSummary: resp.RefinementSummary,
		Suggestions:       resp.Suggestions,
		SearchTimeMs:      resp.SearchTimeMs,
	})
}

// handleGetInfluencer handles GET /api/v1/influencers/{id}.
func (s *Server) handleGetInfluencer(w http.ResponseWriter, r *http.Request) {
	id := gochi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "id is required")
		return
	}

	inf, err := s.search.GetByID(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, influencerToDTO(inf, 0))
}

// handleTrendingCategories handles GET /api/v1/influencers/trending/categories.
// The body is a plain array of category names, most common first.
func (s *Server) handleTrendingCategories(w http.ResponseWriter, r *http.Request) {
	names, err := s.catalog.TrendingCategories(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emptySlice(names))
}

// handleCategories handles GET /api/v1/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalog.Get(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogToDTO(cat))
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// hasMore reports whether another page exists past the served window.
func hasMore(offset, limit, total int) bool {
	return offset+limit < total
}

func pageLimit(requested int) int {
	if requested <= 0 {
		return 10
	}
	if requested > 100 {
		return 100
	}
	return requested
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInfluencerNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidFilter,
		domain.ErrInvalidRequest,
		domain.ErrEmbeddingProviderError,
		domain.ErrSearchUnavailable,
		domain.ErrAnalyzerUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
