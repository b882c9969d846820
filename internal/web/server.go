// Package web exposes the reporting operations as a JSON HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quay-qe/github-changes/internal/domain"
	"github.com/quay-qe/github-changes/internal/gateway"
	"github.com/quay-qe/github-changes/internal/usecase"
)

const defaultDays = 30

// analyzerFactory builds an Analyzer for one request's token. Tests swap it
// to inject a mock fetcher.
type analyzerFactory func(token string, logger *log.Logger) (*usecase.Analyzer, error)

// Server handles HTTP requests. Tokens arrive per request; no ambient
// token state is kept between requests.
type Server struct {
	Router *chi.Mux

	logger      *log.Logger
	newAnalyzer analyzerFactory
}

// NewServer creates a new web server.
func NewServer(logger *log.Logger) *Server {
	s := &Server{
		logger: logger,
		newAnalyzer: func(token string, logger *log.Logger) (*usecase.Analyzer, error) {
			gw, err := gateway.NewGitHubGateway(token, logger)
			if err != nil {
				return nil, err
			}
			return usecase.NewAnalyzer(gw, logger), nil
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/health", s.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/branches/{owner}/{repo}", s.getBranches)
		r.Post("/changes", s.getChanges)
		r.Post("/compare", s.compareBranches)
		r.Post("/prs", s.getPullRequests)
		r.Post("/validate-token", s.validateToken)
	})

	s.Router = r
}

// Start starts the web server.
func (s *Server) Start(addr string) error {
	s.logger.Printf("Starting github-changes API server on %s", addr)
	s.logger.Println("Available endpoints:")
	s.logger.Println("  GET  /health")
	s.logger.Println("  GET  /api/branches/{owner}/{repo}")
	s.logger.Println("  POST /api/changes")
	s.logger.Println("  POST /api/compare")
	s.logger.Println("  POST /api/prs")
	s.logger.Println("  POST /api/validate-token")
	return http.ListenAndServe(addr, s.Router)
}

type reportRequest struct {
	Token         string `json:"token"`
	Repo          string `json:"repo"`
	Branch        string `json:"branch"`
	BaseBranch    string `json:"base_branch"`
	CompareBranch string `json:"compare_branch"`
	State         string `json:"state"`
	Jira          string `json:"jira"`
	Days          *int   `json:"days"`
	Limit         *int   `json:"limit"`
}

func (req *reportRequest) days() int {
	if req.Days == nil {
		return defaultDays
	}
	return *req.Days
}

func (req *reportRequest) limit() int {
	if req.Limit == nil {
		return 20
	}
	return *req.Limit
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "github-changes-api",
	})
}

func (s *Server) getBranches(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "GitHub token is required")
		return
	}
	analyzer, err := s.newAnalyzer(token, s.logger)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	repo := fmt.Sprintf("%s/%s", chi.URLParam(r, "owner"), chi.URLParam(r, "repo"))
	owner, name, err := domain.SplitRepoName(repo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	branches, err := analyzer.Branches(r.Context(), owner, name)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"branches": branches})
}

func (s *Server) getChanges(w http.ResponseWriter, r *http.Request) {
	req, analyzer, ok := s.decodeReport(w, r)
	if !ok {
		return
	}
	owner, name, err := domain.SplitRepoName(req.Repo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	branch := req.Branch
	if branch == "" {
		branch = "main"
	}

	snapshot, err := analyzer.BranchChanges(r.Context(), owner, name, branch, req.days())
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	// total_commits covers the full filtered set; only the rows are limited.
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"repository":    owner + "/" + name,
		"branch":        branch,
		"days":          req.days(),
		"total_commits": len(snapshot.Commits),
		"changes":       truncate(snapshot.Commits, req.limit()),
	})
}

func (s *Server) compareBranches(w http.ResponseWriter, r *http.Request) {
	req, analyzer, ok := s.decodeReport(w, r)
	if !ok {
		return
	}
	owner, name, err := domain.SplitRepoName(req.Repo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BaseBranch == "" || req.CompareBranch == "" {
		writeError(w, http.StatusBadRequest, "Both base and compare branches are required")
		return
	}

	result, err := analyzer.CompareBranches(r.Context(), owner, name, req.BaseBranch, req.CompareBranch, req.days())
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	limit := req.limit()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"repository":     owner + "/" + name,
		"base_branch":    req.BaseBranch,
		"compare_branch": req.CompareBranch,
		"days":           req.days(),
		"comparison": map[string]any{
			"strategy":          result.Strategy,
			"unique_to_base":    truncate(result.BaseOnly, limit),
			"unique_to_compare": truncate(result.CompareOnly, limit),
			"common_commits":    truncate(result.Common, limit),
			"base_stats":        result.BaseStats,
			"compare_stats":     result.CompareStats,
			"ahead_by":          result.AheadBy,
			"behind_by":         result.BehindBy,
		},
	})
}

func (s *Server) getPullRequests(w http.ResponseWriter, r *http.Request) {
	req, analyzer, ok := s.decodeReport(w, r)
	if !ok {
		return
	}
	owner, name, err := domain.SplitRepoName(req.Repo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state := req.State
	if state == "" {
		state = "open"
	}

	prs, err := analyzer.PullRequests(r.Context(), owner, name, req.Branch, state, req.days(), req.Jira)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"repository":    owner + "/" + name,
		"state":         state,
		"days":          req.days(),
		"total_prs":     len(prs),
		"pull_requests": truncate(prs, req.limit()),
	})
}

func (s *Server) validateToken(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"valid": false, "error": "Token is required"})
		return
	}
	analyzer, err := s.newAnalyzer(req.Token, s.logger)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"valid": false, "error": err.Error()})
		return
	}
	user, err := analyzer.ValidateToken(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"valid": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true, "user": user})
}

// decodeReport parses the shared request body, enforcing the token and repo
// requirements, and builds the per-request analyzer.
func (s *Server) decodeReport(w http.ResponseWriter, r *http.Request) (reportRequest, *usecase.Analyzer, bool) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, nil, false
	}
	if req.Token == "" {
		req.Token = bearerToken(r)
	}
	if req.Token == "" {
		writeError(w, http.StatusUnauthorized, "GitHub token is required")
		return req, nil, false
	}
	if req.Repo == "" {
		writeError(w, http.StatusBadRequest, "Repository is required")
		return req, nil, false
	}
	analyzer, err := s.newAnalyzer(req.Token, s.logger)
	if err != nil {
		s.writeAPIError(w, err)
		return req, nil, false
	}
	return req, analyzer, true
}

// writeAPIError maps the gateway error taxonomy onto HTTP status codes.
func (s *Server) writeAPIError(w http.ResponseWriter, err error) {
	var authErr *gateway.AuthError
	var notFoundErr *gateway.NotFoundError
	var rateErr *gateway.RateLimitError
	switch {
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &rateErr):
		w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rateErr.RetryAfter.Seconds()))
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		s.logger.Printf("upstream request failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
