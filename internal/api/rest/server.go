package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/veskob/botezscan/internal/scanjob"
	"github.com/veskob/botezscan/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, scanSvc *scanjob.Service) *Server {
	handler := NewHandler(db)
	scanHandler := NewScanHandler(scanSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Roster
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players", handler.AddPlayer).Methods("POST")
	api.HandleFunc("/players/{username}", handler.DeactivatePlayer).Methods("DELETE")
	api.HandleFunc("/players/{username}/games", handler.GetPlayerGames).Methods("GET")
	api.HandleFunc("/players/{username}/findings", handler.GetPlayerFindings).Methods("GET")

	// Games
	api.HandleFunc("/games", handler.GetGames).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")

	// Findings
	api.HandleFunc("/findings", handler.GetFindings).Methods("GET")

	// Scan operations
	api.HandleFunc("/scan", scanHandler.HandleScanRequest).Methods("POST")
	api.HandleFunc("/scan/status", scanHandler.HandleScanStatus).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
