package http

import (
	"net/http"

	"laundry-backend/internal/handlers"
	"laundry-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	masterHandler *handlers.MasterHandler,
	entryHandler *handlers.EntryHandler,
	dashboardHandler *handlers.DashboardHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/healthz", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes; admin-only writes are gated per route
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)
	admin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAdmin(h)
	}

	// Users (admin)
	api.Handle("/users", admin(authHandler.CreateUser)).Methods("POST")

	// Master lists: reads are open to any logged-in user so the entry form
	// can populate its dropdowns; writes are admin-only
	api.HandleFunc("/masters/{category}", masterHandler.List).Methods("GET")
	api.Handle("/masters/{category}", admin(masterHandler.Add)).Methods("POST")
	api.Handle("/masters/{category}/{name}", admin(masterHandler.Delete)).Methods("DELETE")

	// Entries, dashboard, exports
	api.HandleFunc("/entries", entryHandler.Create).Methods("POST")
	api.HandleFunc("/entries", entryHandler.List).Methods("GET")
	api.HandleFunc("/dashboard", dashboardHandler.Get).Methods("GET")
	api.HandleFunc("/export/zip", exportHandler.Zip).Methods("GET")
	api.HandleFunc("/export/pdf", exportHandler.PDF).Methods("GET")

	return r
}
