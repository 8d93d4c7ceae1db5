package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/billing"
	"github.com/jmorgan-io/shop-service/internal/catalog"
	"github.com/jmorgan-io/shop-service/internal/events"
	"github.com/jmorgan-io/shop-service/internal/httpapi"
	"github.com/jmorgan-io/shop-service/internal/orders"
	"github.com/jmorgan-io/shop-service/internal/storage"
	"github.com/jmorgan-io/shop-service/internal/websocket"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(parseLogLevel(getEnv("LOG_LEVEL", "info")))

	port := getEnv("SHOP_SERVICE_PORT", "8080")
	backend := getEnv("STORAGE_BACKEND", "memory")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")

	store, db := buildStore(backend, logger)
	if db != nil {
		defer db.Close()
	}

	productService := catalog.NewService(store, logger)
	orderService := orders.NewService(store, logger)
	billService := billing.NewService(store, logger)

	// Kafka is optional; without brokers the service runs without
	// lifecycle events.
	if kafkaBrokers != "" {
		producer, err := events.NewKafkaProducer(kafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Kafka producer")
		}
		defer producer.Close()
		orderService.SetEventPublisher(producer)
		logger.WithField("brokers", kafkaBrokers).Info("Kafka event publishing enabled")
	}

	wsHub := websocket.NewHub(logger)
	go wsHub.Run()

	handler := httpapi.NewHandler(productService, orderService, billService, logger)
	handler.SetActivityHub(wsHub)

	router := httpapi.NewRouter(handler, healthCheck(db), logger)
	router.HandleFunc("/ws", wsHub.HandleWebSocket)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":    port,
			"storage": backend,
		}).Info("Starting shop service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}

func buildStore(backend string, logger *logrus.Logger) (storage.Store, *sql.DB) {
	switch backend {
	case "memory":
		logger.Info("Using in-memory storage")
		return storage.NewMemory(), nil

	case "postgres":
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "shopservice")
		dbPassword := getEnv("DB_PASSWORD", "shopservice")
		dbName := getEnv("DB_NAME", "shop")

		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}

		// Wait for database to be ready
		for i := 0; i < 30; i++ {
			if err := db.Ping(); err == nil {
				logger.Info("Database connection established")
				break
			}
			logger.Info("Waiting for database...")
			time.Sleep(2 * time.Second)
		}

		store, err := storage.NewPostgres(db)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database schema")
		}
		return store, db

	default:
		logger.WithField("backend", backend).Fatal("Unknown storage backend")
		return nil, nil
	}
}

func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy","service":"shop-service"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"shop-service"}`))
	}
}

func parseLogLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
