// cmd/meeting-agent/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assistant-agents/internal/acp"
	"assistant-agents/internal/common/aws"
	"assistant-agents/internal/common/config"
	"assistant-agents/internal/common/database"
	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/observability"
	"assistant-agents/internal/domains/meeting"
	"assistant-agents/internal/router"
)

const (
	defaultAddress = ":8100"
	metricsAddress = ":9100"
)

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

	zapLog.Info("Starting meeting agent...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("meeting-agent")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("meeting-agent", cfg.Tracing.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("tracing init failed", zap.Error(err))
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

	notifier := buildNotifier(ctx, cfg, log, zapLog)

	store := meeting.NewStore(pg.GetDB())
	service := meeting.NewService(meeting.DefaultConfig(), store, notifier, log)
	handler := meeting.NewHandler(service, log)

	server := acp.NewServer(log)
	server.Register(meeting.AgentName, router.CollaboratorAgent(handler))

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		mux.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on " + metricsAddress)
		if err := http.ListenAndServe(metricsAddress, mux); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	address := cfg.Server.Address
	if address == "" {
		address = defaultAddress
	}

	go func() {
		zapLog.Info("Meeting agent listening on " + address)
		if err := server.ListenAndServe(address,
			config.GetDuration(cfg.Server.ReadTimeout),
			config.GetDuration(cfg.Server.WriteTimeout),
		); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("agent server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Meeting agent stopped gracefully")
}

// buildNotifier wires SES and SNS when enabled; notification failures
// never block scheduling, so client init failures only log a warning.
func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) meeting.Notifier {
	var sesClient *aws.SESClient
	var snsClient *aws.SNSClient

	if cfg.AWS.SES.Enabled {
		var err error
		sesClient, err = aws.NewSESClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Warn("SES client init failed", zap.Error(err))
			sesClient = nil
		}
	}
	if cfg.AWS.SNS.Enabled {
		var err error
		snsClient, err = aws.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Warn("SNS client init failed", zap.Error(err))
			snsClient = nil
		}
	}

	if sesClient == nil && snsClient == nil {
		return meeting.NoOpNotifier{}
	}
	return meeting.NewAWSNotifier(
		sesClient, snsClient,
		cfg.AWS.SES.FromEmail,
		cfg.Assistant.NotifyEmail,
		cfg.Assistant.NotifyPhone,
		log,
	)
}
