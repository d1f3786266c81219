package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/merchkit/alsobought/internal/domain"
	"github.com/merchkit/alsobought/internal/metrics"
	cataloguc "github.com/merchkit/alsobought/internal/usecase/catalog"
	healthuc "github.com/merchkit/alsobought/internal/usecase/health"
	purchasesuc "github.com/merchkit/alsobought/internal/usecase/purchases"
	recommenduc "github.com/merchkit/alsobought/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	catalog       *cataloguc.Service
	purchases     *purchasesuc.Service
	recommend     *recommenduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	purchases *purchasesuc.Service,
	recommend *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		catalog:   catalog,
		purchases: purchases,
		recommend: recommend,
		health:    health,
		logger:    logger,
		validate:  validator.New(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrInvalidProduct, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidHistory, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidTopK, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidDecay, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidFairness, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.ListProducts)
			r.Put("/{id}", s.UpsertProduct)
			r.Get("/{id}", s.GetProduct)
			r.Delete("/{id}", s.DeleteProduct)
		})
		r.Route("/users/{id}", func(r chi.Router) {
			r.Post("/purchases", s.RecordPurchases)
			r.Get("/purchases", s.GetPurchases)
			r.Get("/recommendations", s.GetRecommendations)
		})
		r.Post("/feedback", s.RecordFeedback)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// UpsertProduct handles PUT /api/v1/products/{id}.
func (s *Server) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req upsertProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	p, err := s.catalog.Upsert(r.Context(), id, req.Title, req.Brand, req.Category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(p))
}

// GetProduct handles GET /api/v1/products/{id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productToResponse(p))
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]productResponse, len(products))
	for i, p := range products {
		items[i] = productToResponse(p)
	}

	writeJSON(w, http.StatusOK, productListResponse{Items: items, Total: len(items)})
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordPurchases handles POST /api/v1/users/{id}/purchases.
func (s *Server) RecordPurchases(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req recordPurchasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.purchases.Record(r.Context(), userID, req.ProductIDs); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, purchasesResponse{UserID: userID, ProductIDs: req.ProductIDs})
}

// GetPurchases handles GET /api/v1/users/{id}/purchases.
func (s *Server) GetPurchases(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	owned, err := s.purchases.Owned(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if owned == nil {
		owned = []string{}
	}

	writeJSON(w, http.StatusOK, purchasesResponse{UserID: userID, ProductIDs: owned})
}

// GetRecommendations handles GET /api/v1/users/{id}/recommendations.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be an integer")
			return
		}
		topK = parsed
	}

	recs, err := s.recommend.Recommend(r.Context(), userID, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	metrics.RecommendationsTotal.Inc()

	catalog, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	titles := make(map[string]string, len(catalog))
	for _, p := range catalog {
		titles[p.ID()] = p.Title()
	}

	items := make([]recommendationItem, len(recs))
	for i, rc := range recs {
		title, ok := titles[rc.ProductID()]
		if !ok {
			title = rc.ProductID()
		}
		items[i] = recommendationItem{
			ProductID:   rc.ProductID(),
			Title:       title,
			Score:       rc.Score(),
			Explanation: rc.Explanation(),
		}
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{UserID: userID, Items: items})
}

// RecordFeedback handles POST /api/v1/feedback. Events are counted for
// observability and acknowledged; they do not influence scoring.
func (s *Server) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	eventID := uuid.NewString()
	metrics.FeedbackTotal.WithLabelValues(req.Outcome).Inc()
	s.logger.Info("feedback received",
		zap.String("event_id", eventID),
		zap.String("user_id", req.UserID),
		zap.String("product_id", req.ProductID),
		zap.String("outcome", req.Outcome),
	)

	writeJSON(w, http.StatusAccepted, feedbackResponse{EventID: eventID, Status: "accepted"})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
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

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrProductNotFound,
		domain.ErrInvalidProduct,
		domain.ErrInvalidHistory,
		domain.ErrInvalidTopK,
		domain.ErrInvalidDecay,
		domain.ErrInvalidFairness,
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
