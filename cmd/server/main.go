package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"laundry-backend/internal/auth"
	"laundry-backend/internal/config"
	"laundry-backend/internal/handlers"
	h "laundry-backend/internal/http"
	"laundry-backend/internal/middleware"
	"laundry-backend/internal/services"
	"laundry-backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	if cfg.Database.URL != "" {
		log.Printf("[Store] Using Postgres backend")
	} else {
		log.Printf("[Store] Using SQLite backend at %s", cfg.Database.SQLitePath)
	}

	if err := st.Init(ctx); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(st, jwtManager)
	entryService := services.NewEntryService(st, cfg.Upload.Dir)
	exportService := services.NewExportService()

	authHandler := handlers.NewAuthHandler(userService)
	masterHandler := handlers.NewMasterHandler(st)
	entryHandler := handlers.NewEntryHandler(entryService)
	dashboardHandler := handlers.NewDashboardHandler(entryService)
	exportHandler := handlers.NewExportHandler(entryService, exportService)
	healthHandler := handlers.NewHealthHandler()

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := h.NewRouter(
		authHandler,
		masterHandler,
		entryHandler,
		dashboardHandler,
		exportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.RequestLogging(
			middleware.MetricsMiddleware(
				middleware.NewCORS(cfg)(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Laundry KPI backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
