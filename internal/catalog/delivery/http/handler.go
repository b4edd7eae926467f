package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/query"
	"github.com/tair/cocktail-catalog/pkg/logger"
)

// Commands groups the write-side handlers
type Commands struct {
	CreateCocktail         *command.CreateCocktailHandler
	UpdateCocktail         *command.UpdateCocktailHandler
	DeleteCocktail         *command.DeleteCocktailHandler
	AddCompositionLines    *command.AddCompositionLinesHandler
	RemoveCompositionLine  *command.RemoveCompositionLineHandler
	UpdateCompositionQty   *command.UpdateCompositionQuantityHandler
	FindOrCreateIngredient *command.FindOrCreateIngredientHandler
	CreateIngredient       *command.CreateIngredientHandler
	UpdateIngredient       *command.UpdateIngredientHandler
	DeleteIngredient       *command.DeleteIngredientHandler
	AddFavorite            *command.AddFavoriteHandler
	RemoveFavorite         *command.RemoveFavoriteHandler
	ToggleFavorite         *command.ToggleFavoriteHandler
	ClearFavorites         *command.ClearFavoritesHandler
	SetFavoriteColor       *command.SetFavoriteColorHandler
	CreateColor            *command.CreateColorHandler
	DeleteColor            *command.DeleteColorHandler
}

// Queries groups the read-side handlers
type Queries struct {
	GetCocktail   *query.GetCocktailHandler
	ListCocktails *query.ListCocktailsHandler
	FindCocktails *query.FindCocktailsHandler
	Stats         *query.GetStatsHandler
	IDGaps        *query.IDGapsHandler
	Ingredients   *query.IngredientsHandler
	Favorites     *query.FavoritesHandler
	Colors        *query.ColorsHandler
}

// CatalogHandler handles HTTP requests for the cocktail catalog using CQRS pattern
type CatalogHandler struct {
	commands Commands
	queries  Queries
	store    domain.Store

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalCocktails prometheus.Gauge
}

// NewCatalogHandler creates the handler and registers its metrics on reg
func NewCatalogHandler(commands Commands, queries Queries, store domain.Store, reg prometheus.Registerer) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalCocktails := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_cocktails",
			Help: "Total number of cocktails in the catalog",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, requestSummary, totalCocktails)

	return &CatalogHandler{
		commands:       commands,
		queries:        queries,
		store:          store,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		requestSummary: requestSummary,
		totalCocktails: totalCocktails,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// route registers one endpoint with metrics and the given guards
func (h *CatalogHandler) route(router *mux.Router, method, path string, handler http.HandlerFunc, guards ...func(http.HandlerFunc) http.HandlerFunc) {
	for i := len(guards) - 1; i >= 0; i-- {
		handler = guards[i](handler)
	}
	router.HandleFunc(path, h.metricsMiddleware(path, handler)).Methods(method)
}

// RegisterRoutes registers every catalog endpoint. Static segments are
// registered before {id} patterns that would shadow them.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	user := RequireRole(RoleUser, RoleAdmin)
	admin := RequireRole(RoleAdmin)

	// Cocktails
	h.route(router, "GET", "/api/public/cocktails", h.ListCocktails)
	h.route(router, "GET", "/api/user/cocktails", h.ListCocktails, user)
	h.route(router, "GET", "/api/user/cocktails/search", h.SearchCocktails, user)
	h.route(router, "GET", "/api/user/cocktails/alcoholic", h.ListByAlcoholic, user)
	h.route(router, "GET", "/api/user/cocktails/with-favorites", h.ListWithFavorites, user)
	h.route(router, "GET", "/api/user/cocktails/category/{category}", h.ListByCategory, user)
	h.route(router, "GET", "/api/user/cocktails/{id:[0-9]+}", h.GetCocktail, user)
	h.route(router, "POST", "/api/cocktails", h.CreateCocktail, user)
	h.route(router, "PUT", "/api/cocktails/{id:[0-9]+}", h.UpdateCocktail, user)
	h.route(router, "POST", "/api/cocktails/{id:[0-9]+}/ingredients", h.AddCompositionLines, user)
	h.route(router, "DELETE", "/api/cocktails/{id:[0-9]+}/ingredients/{name}", h.RemoveCompositionLine, user)
	h.route(router, "PATCH", "/api/cocktails/{id:[0-9]+}/ingredients/{ingredientId:[0-9]+}", h.UpdateCompositionQuantity, user)
	h.route(router, "GET", "/api/admin/cocktails/gaps", h.GetIDGaps, admin)
	h.route(router, "GET", "/api/admin/stats", h.GetStats, admin)
	h.route(router, "DELETE", "/api/admin/cocktails/{id:[0-9]+}", h.DeleteCocktail, admin)

	// Ingredients
	h.route(router, "GET", "/api/ingredients", h.ListIngredients)
	h.route(router, "GET", "/api/ingredients/search", h.SearchIngredients)
	h.route(router, "GET", "/api/ingredients/grouped-by-category", h.GroupIngredients)
	h.route(router, "GET", "/api/ingredients/{id:[0-9]+}", h.GetIngredient)
	h.route(router, "POST", "/api/ingredients", h.CreateIngredient, user)
	h.route(router, "POST", "/api/ingredients/find-or-create", h.FindOrCreateIngredient, user)
	h.route(router, "PUT", "/api/ingredients/{id:[0-9]+}", h.UpdateIngredient, user)
	h.route(router, "DELETE", "/api/ingredients/{id:[0-9]+}", h.DeleteIngredient, admin)

	// Favorites
	h.route(router, "GET", "/api/favorites", h.ListFavorites, RequireAuth)
	h.route(router, "DELETE", "/api/favorites", h.ClearFavorites, RequireAuth)
	h.route(router, "GET", "/api/favorites/count", h.CountFavorites, RequireAuth)
	h.route(router, "GET", "/api/favorites/most-favorited", h.MostFavorited, RequireAuth)
	h.route(router, "GET", "/api/favorites/check/{cocktailId:[0-9]+}", h.CheckFavorite, RequireAuth)
	h.route(router, "PUT", "/api/favorites/toggle/{cocktailId:[0-9]+}", h.ToggleFavorite, RequireAuth)
	h.route(router, "POST", "/api/favorites/{cocktailId:[0-9]+}", h.AddFavorite, RequireAuth)
	h.route(router, "DELETE", "/api/favorites/{cocktailId:[0-9]+}", h.RemoveFavorite, RequireAuth)
	h.route(router, "PATCH", "/api/favorites/{cocktailId:[0-9]+}/color", h.SetFavoriteColor, RequireAuth)

	// Colors
	h.route(router, "GET", "/api/public/colors", h.ListColors)
	h.route(router, "GET", "/api/public/colors/{id:[0-9]+}", h.GetColor)
	h.route(router, "POST", "/api/admin/colors", h.CreateColor, admin)
	h.route(router, "DELETE", "/api/admin/colors/{id:[0-9]+}", h.DeleteColor, admin)
}

// RegisterHealthCheck exposes /health backed by a database ping
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Health check failed")
			respondError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// updateCocktailsMetric updates the total cocktails gauge
func (h *CatalogHandler) updateCocktailsMetric(ctx context.Context) {
	count, err := h.store.Cocktails().Count(ctx, domain.CocktailFilter{})
	if err == nil {
		h.totalCocktails.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error envelope
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// respondDomainError maps catalog error kinds onto status codes. Anything
// unexpected is logged and hidden behind a generic message.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Failed to " + action)
		respondError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// decodeJSON reads the request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses a numeric path variable
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil || id == 0 {
		respondError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
