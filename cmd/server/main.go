package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"crashlog/internal/auth"
	"crashlog/internal/config"
	"crashlog/internal/graph"
	"crashlog/internal/metrics"
	"crashlog/internal/middleware"
	"crashlog/internal/service"
	"crashlog/internal/storage"
	"crashlog/internal/storage/memory"
	"crashlog/internal/storage/mongodb"
	"crashlog/internal/storage/sqlite"
	"crashlog/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.FromEnv()
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend)

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	identity := service.NewIdentityService(store, authenticator, jwtManager, m, slog.Default())
	persons := service.NewPersonService(store)
	insurances := service.NewInsuranceService(store, m)
	accidents := service.NewAccidentService(store, m)

	schema, err := graph.NewSchema(identity, persons, insurances, accidents)
	if err != nil {
		slog.Error("Failed to build schema", "error", err)
		os.Exit(1)
	}

	gqlHandler := handler.New(&handler.Config{
		Schema:     &schema,
		Pretty:     true,
		GraphiQL:   true,
		Playground: false,
	})

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(corsMiddleware)
	r.Use(middleware.ResolveIdentity(jwtManager))
	r.Use(middleware.ResolveAdmin(cfg.AdminToken))

	r.Handle("/graphql", gqlHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// h2c allows HTTP/2 without TLS; TLS termination happens upstream.
	h2cHandler := h2c.NewHandler(r, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "mongodb":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	case "memory":
		return memory.New(), nil
	default:
		return sqlite.New(cfg.DBPath)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Token")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
