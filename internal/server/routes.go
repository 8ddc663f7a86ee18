package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Classification
	mux.HandleFunc("/api/classify", s.app.ClassifyHandler.ClassifyHandler) // POST - classify announcement text

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Catch-all for unknown routes
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
