// cmd/orchestrator/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assistant-agents/internal/acp"
	"assistant-agents/internal/common/config"
	"assistant-agents/internal/common/database"
	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/observability"
	"assistant-agents/internal/domains/health"
	"assistant-agents/internal/domains/notes"
	"assistant-agents/internal/router"
)

const defaultAddress = ":8000"

// queryRequest is the public API body: one free-form utterance.
type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting orchestrator...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("orchestrator")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("orchestrator", cfg.Tracing.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("tracing init failed", zap.Error(err))
		tracing = nil
	} else {
		defer tracing.Shutdown()
	}

	ctx := context.Background()

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries",
			zap.String("code", string(apperrors.ErrCodeDatabaseConnectionFailed)), zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Collaborators ---
	// Notes and health run in-process; expenses and meetings are remote
	// agent processes reached over the run endpoint.
	callTimeout := config.GetDuration(cfg.Agents.CallTimeout)

	notesCfg := notes.DefaultConfig()
	if cfg.Database.Elasticsearch.NoteIndex != "" {
		notesCfg.Index = cfg.Database.Elasticsearch.NoteIndex
	}
	notesStore := notes.NewStore(pg.GetDB())
	notesService := notes.NewService(notesCfg, notesStore, esClient, log)

	healthStore := health.NewStore(redis.GetClient())
	healthService := health.NewService(healthStore, log)

	collaborators := map[router.Domain]router.Collaborator{
		router.DomainExpense: router.NewRemoteCollaborator(
			acp.NewClient(cfg.Agents.ExpenseURL, callTimeout), "expense_tracker"),
		router.DomainNotes:  notes.NewHandler(notesService, log),
		router.DomainHealth: health.NewHandler(healthService, log),
	}
	if cfg.Agents.MeetingEnabled {
		collaborators[router.DomainMeeting] = router.NewRemoteCollaborator(
			acp.NewClient(cfg.Agents.MeetingURL, callTimeout), "meeting_manager")
	}

	rt := router.New(collaborators, cfg.Assistant.DefaultUserID, log,
		router.WithCallTimeout(callTimeout))

	// --- HTTP API ---
	mux := http.NewServeMux()
	mux.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			http.Error(w, "query is required", http.StatusBadRequest)
			return
		}

		reqCtx := r.Context()
		if tracing != nil {
			spanCtx, span := tracing.StartSpan(reqCtx, "route-query")
			defer span.End()
			reqCtx = spanCtx
		}

		start := time.Now()
		response := rt.RouteAndExecute(reqCtx, req.Query)
		obs.RecordQueryProcessed(reqCtx, "processed")
		obs.RecordQueryDuration(reqCtx, time.Since(start), "processed")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(queryResponse{Response: response})
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	address := cfg.Server.Address
	if address == "" {
		address = defaultAddress
	}

	srv := &http.Server{
		Addr:         address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Orchestrator listening on " + address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Orchestrator stopped gracefully")
}
