// Package chi exposes the product search API over HTTP.
package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stylora/apparel-search/internal/domain"
	"github.com/stylora/apparel-search/internal/domain/product"
	"github.com/stylora/apparel-search/internal/domain/search/filter"
	"github.com/stylora/apparel-search/internal/metrics"
	healthuc "github.com/stylora/apparel-search/internal/usecase/health"
	searchuc "github.com/stylora/apparel-search/internal/usecase/search"
)

// finder is the consumer interface over the search usecase.
type finder interface {
	Find(ctx context.Context, query string, filters filter.Request) (searchuc.Result, error)
}

// checker is the consumer interface over the health usecase.
type checker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers for the search API.
type Server struct {
	search finder
	health checker
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search finder, health checker, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Routes registers the API endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/find_apparel", s.FindApparel)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// findArguments is the search payload after unwrapping.
type findArguments struct {
	UserQuery string         `json:"user_query"`
	Filters   filter.Request `json:"filters"`
}

// findResponse is the search response body. Message is set only for
// degraded outcomes.
type findResponse struct {
	Products []product.Record `json:"products"`
	Message  string           `json:"message,omitempty"`
}

// FindApparel handles POST /api/find_apparel.
//
// Upstream workflow engines send the payload in three shapes: wrapped
// under "apparel_search_data" as an object, wrapped as a stringified
// JSON string, or as the bare arguments object. All three are accepted.
func (s *Server) FindApparel(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, "Request body is empty or not valid JSON.")
		return
	}

	args, err := unwrapArguments(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if args.UserQuery == "" {
		writeError(w, http.StatusBadRequest, "Missing 'user_query' in request.")
		return
	}

	start := time.Now()
	result, err := s.search.Find(r.Context(), args.UserQuery, args.Filters)
	metrics.ObserveSearch(result.Stage, time.Since(start).Seconds(), err)

	if err != nil {
		s.handleSearchError(w, err)
		return
	}

	products := result.Products
	if products == nil {
		products = []product.Record{}
	}

	s.logger.Info("search completed",
		zap.Int("stage", result.Stage),
		zap.Int("products", len(products)),
	)

	writeJSON(w, http.StatusOK, findResponse{Products: products})
}

// unwrapArguments peels the optional apparel_search_data envelope.
func unwrapArguments(body []byte) (findArguments, error) {
	var envelope struct {
		Payload *json.RawMessage `json:"apparel_search_data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return findArguments{}, errors.New("Request body is empty or not valid JSON.")
	}

	raw := body
	if envelope.Payload != nil {
		inner := *envelope.Payload
		switch {
		case len(inner) > 0 && inner[0] == '"':
			// Stringified JSON: unquote, then parse the contents.
			var str string
			if err := json.Unmarshal(inner, &str); err != nil {
				return findArguments{}, errors.New("Failed to parse 'apparel_search_data' string as JSON.")
			}
			raw = []byte(str)
		case len(inner) > 0 && inner[0] == '{':
			raw = inner
		default:
			return findArguments{}, errors.New("Invalid type for 'apparel_search_data'. Expected string or object.")
		}
	}

	var args findArguments
	if err := json.Unmarshal(raw, &args); err != nil {
		if envelope.Payload != nil {
			return findArguments{}, errors.New("Failed to parse 'apparel_search_data' string as JSON.")
		}
		return findArguments{}, errors.New("Request body is empty or not valid JSON.")
	}
	return args, nil
}

// handleSearchError maps domain errors to HTTP responses. An unreachable
// store degrades to an empty 200 so conversational callers can keep going.
func (s *Server) handleSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing 'user_query' in request.")
	case errors.Is(err, domain.ErrStoreUnavailable):
		s.logger.Warn("product store unavailable", zap.Error(err))
		writeJSON(w, http.StatusOK, findResponse{
			Products: []product.Record{},
			Message:  "Product catalog is unavailable. Please try again later.",
		})
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		s.logger.Error("embedding provider error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Error processing query.")
	default:
		s.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	}
	if report.Products >= 0 {
		resp["products"] = report.Products
	}

	writeJSON(w, httpStatus, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
