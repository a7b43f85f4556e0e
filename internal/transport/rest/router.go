package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"campuspulse/internal/service"
	"campuspulse/internal/transport/rest/handler"
	"campuspulse/internal/transport/rest/middleware"
	"campuspulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService            *service.AuthService
	AggregationService     *service.AggregationService
	FindingsService        *service.FindingsService
	RecommendationsService *service.RecommendationsService
	DecisionService        *service.DecisionService
	ComparisonService      *service.ComparisonService
	ResponseService        *service.ResponseService
	WSHub                  *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	analyticsHandler := handler.NewAnalyticsHandler(
		c.AggregationService,
		c.FindingsService,
		c.RecommendationsService,
		c.DecisionService,
		c.ComparisonService,
		c.WSHub,
	)
	dataHandler := handler.NewDataHandler(c.ResponseService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Read-only analytics routes
	analytics := v1.PathPrefix("/analytics").Subrouter()
	analytics.HandleFunc("/overview", analyticsHandler.Overview).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/quality", analyticsHandler.Quality).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/concerns", analyticsHandler.Concerns).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/arguments", analyticsHandler.Arguments).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/demographics", analyticsHandler.Demographics).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/cross-tabulation", analyticsHandler.CrossTabulation).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/temporal", analyticsHandler.Temporal).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/word-cloud", analyticsHandler.WordCloud).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/sentiment", analyticsHandler.Sentiment).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/sentiment/{id}", analyticsHandler.SentimentByID).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/suggestions", analyticsHandler.Suggestions).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/suggestions/{id}", analyticsHandler.SuggestionByID).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/key-findings", analyticsHandler.KeyFindings).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/recommendations", analyticsHandler.Recommendations).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/decision-summary", analyticsHandler.DecisionSummary).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/compare", analyticsHandler.Compare).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/compare/groups", analyticsHandler.CompareGroups).Methods("GET", "OPTIONS")
	analytics.HandleFunc("/cache-status", analyticsHandler.CacheStatus).Methods("GET", "OPTIONS")

	// Data routes
	data := v1.PathPrefix("/data").Subrouter()
	data.HandleFunc("/responses", dataHandler.ListResponses).Methods("GET", "OPTIONS")
	data.HandleFunc("/responses/{id}", dataHandler.GetResponse).Methods("GET", "OPTIONS")
	data.HandleFunc("/metadata", dataHandler.Metadata).Methods("GET", "OPTIONS")

	// Admin routes (require auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)
	adminRoutes.HandleFunc("/analytics/refresh", analyticsHandler.Refresh).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/data/refresh", dataHandler.RefreshData).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
