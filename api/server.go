package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"fairaid-guardian/guardian"
)

// Server handles HTTP API requests for the dashboard UI
type Server struct {
	guardian   *guardian.Guardian
	llmEnabled bool
}

// NewServer creates a new API server instance
func NewServer(g *guardian.Guardian, llmEnabled bool) *Server {
	return &Server{
		guardian:   g,
		llmEnabled: llmEnabled,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Dashboard routes
	mux.HandleFunc("GET /api/dashboard/kpis", s.handleGetKPIs)
	mux.HandleFunc("GET /api/dashboard/coverage", s.handleGetCoverage)
	mux.HandleFunc("GET /api/dashboard/fairness", s.handleGetFairness)
	mux.HandleFunc("GET /api/dashboard/anomalies", s.handleGetAnomalies)
	mux.HandleFunc("GET /api/dashboard/regions", s.handleGetRegions)
	mux.HandleFunc("GET /api/dashboard/records", s.handleGetRecords)

	// Guardian insight routes
	mux.HandleFunc("GET /api/insights/{region}", s.handleGetRegionInsight)

	// Cache management
	mux.HandleFunc("POST /api/dashboard/refresh", s.handleForceRefresh)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Serve Static Files (Public UI)
	fs := http.FileServer(http.Dir("./public"))
	mux.Handle("GET /", fs)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
