package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nomina/internal/db"
	"nomina/internal/domain/fiscal"
	"nomina/internal/domain/scenario"
	"nomina/internal/platform/config"
	authhandler "nomina/internal/transport/http/handlers/auth"
	calchandler "nomina/internal/transport/http/handlers/calc"
	scenariohandler "nomina/internal/transport/http/handlers/scenario"
	"nomina/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	registry := fiscal.DefaultRegistry()
	if err := registry.LoadDir(cfg.FiscalTablesDir); err != nil {
		log.Fatalf("fiscal tables failed: %v", err)
	}
	if _, ok := registry.Table(cfg.DefaultFiscalYear); !ok {
		log.Fatalf("no fiscal table for default year %d", cfg.DefaultFiscalYear)
	}

	scenarioService := scenario.NewService(scenario.NewStore(pool), registry)

	router := chi.NewRouter()
	// Auth runs before Logger so access logs can carry the user id.
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		authHandler.RegisterRoutes(r)

		calcHandler := calchandler.NewHandler(registry, cfg.DefaultFiscalYear)
		calcHandler.RegisterRoutes(r)

		scenarioHandler := scenariohandler.NewHandler(scenarioService)
		scenarioHandler.RegisterRoutes(r)
	})

	log.Printf("nomina server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, http.MaxBytesHandler(router, cfg.MaxBodyBytes)); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
