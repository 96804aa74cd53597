// Package main provides the deliveries service entry point: the HTTP
// surface for delivery listing, status mutation, deletion and the alert
// feed, backed by the shared relational database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Lexor-hub/id-transportes-back-sub000/internal/db"
	"github.com/Lexor-hub/id-transportes-back-sub000/internal/deliveries"
	"github.com/Lexor-hub/id-transportes-back-sub000/internal/occurrences"
	"github.com/Lexor-hub/id-transportes-back-sub000/internal/receipts"
	"github.com/Lexor-hub/id-transportes-back-sub000/internal/routes"
	"github.com/Lexor-hub/id-transportes-back-sub000/internal/tracking"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/alerts"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/ha"
	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/tenancy"
)

func main() {
	var (
		listenAddr   string
		databaseType string
		databaseDSN  string
	)

	flag.StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	flag.StringVar(&databaseType, "db-type", "postgres", "Database type (postgres, mysql or sqlite)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		glog.Info("no .env file found, using environment variables")
	}

	if databaseDSN == "" {
		databaseDSN = os.Getenv("TRANSPORTES_DB_DSN")
	}
	if v := os.Getenv("TRANSPORTES_DB_TYPE"); v != "" {
		databaseType = v
	}

	authCfg := authz.ConfigFromEnv()
	if authCfg.Secret == "" {
		glog.Fatal("TRANSPORTES_JWT_SECRET is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gdb, err := db.Open(db.Config{Type: databaseType, DSN: databaseDSN})
	if err != nil {
		glog.Fatalf("database connection failed: %v", err)
	}

	// Stores for the deliveries core and its collaborating subsystems.
	receiptStore := receipts.NewStore(gdb)
	occurrenceStore := occurrences.NewStore(gdb)
	routeStore := routes.NewStore(gdb)
	trackingStore := tracking.NewStore(gdb)

	alertCfg := alerts.ConfigFromEnv()
	alertStore := alerts.NewStore(gdb, alertCfg.CacheSize, logger)

	deliveryStore := deliveries.NewStore(
		gdb,
		receiptStore,
		occurrenceStore, routeStore, trackingStore,
		alertStore,
		logger,
	)

	// Serialize schema migrations across replicas.
	locker := ha.NewMigrationLocker(gdb)
	err = locker.WithLock(context.Background(), func() error {
		for name, migrate := range map[string]func() error{
			"deliveries":  deliveryStore.AutoMigrate,
			"receipts":    receiptStore.AutoMigrate,
			"occurrences": occurrenceStore.AutoMigrate,
			"routes":      routeStore.AutoMigrate,
			"tracking":    trackingStore.AutoMigrate,
			"alerts":      alertStore.AutoMigrate,
		} {
			if err := migrate(); err != nil {
				return fmt.Errorf("auto-migration failed for %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		glog.Fatal(err)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthHandler)
	router.Get("/livez", healthHandler)
	router.Get("/readyz", readyHandler(gdb))

	router.Group(func(r chi.Router) {
		r.Use(authz.TokenMiddleware([]byte(authCfg.Secret), logger))
		r.Use(tenancy.Middleware())
		r.Mount("/api/v1/deliveries", deliveries.Router(deliveryStore))
		r.Mount("/api/v1/alerts", alerts.Router(alertStore))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if alertCfg.Enabled {
		go alerts.NewRetentionWorker(alertStore, alertCfg.RetentionDays, logger).Run(ctx)
	}

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("deliveries server listening", "addr", listenAddr, "dbType", databaseType)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("graceful shutdown failed: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler reports ready once the database answers a ping.
func readyHandler(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := gdb.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}
