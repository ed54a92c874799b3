// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mortgage-workers/internal/common/aws"
	"mortgage-workers/internal/common/camunda"
	"mortgage-workers/internal/common/config"
	"mortgage-workers/internal/common/database"
	"mortgage-workers/internal/common/logger"
	"mortgage-workers/internal/common/observability"
	"mortgage-workers/internal/docengine"
	"mortgage-workers/internal/documents"
	"mortgage-workers/internal/store"
	"mortgage-workers/internal/underwriting"

	pd "mortgage-workers/internal/workers/documents/process-document"
	sdn "mortgage-workers/internal/workers/notifications/send-decision-notification"
	ra "mortgage-workers/internal/workers/underwriting/run-analysis"
)

// retryWithBackoff attempts to execute a function with exponential backoff
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	defer camundaClient.Close()
	zapLog.Info("Camunda client connected successfully")

	// --- Init PostgreSQL with retry ---
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
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
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

	// --- Init Redis with retry ---
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

	// --- Init AWS clients for notifications ---
	sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("SES client failed", zap.Error(err))
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("SNS client failed", zap.Error(err))
	}
	zapLog.Info("All external service clients initialized")

	// --- Build stores and domain services ---
	appStore := store.NewApplicationStore(pg.DB)
	analysisStore := store.NewAnalysisStore(pg.DB)
	docStore := store.NewDocumentStore(pg.DB)
	analysisCache := store.NewAnalysisCache(redis.Client)
	analysisIndexer := store.NewAnalysisIndexer(esClient, cfg.Database.Elasticsearch.AnalysisIndex)

	calculator := underwriting.NewCalculator(underwriting.DefaultScoringThresholds())
	scorer := underwriting.NewScorer()
	checker := underwriting.NewComplianceChecker(underwriting.DefaultComplianceThresholds(), calculator)
	underwritingService := underwriting.NewService(
		appStore, analysisStore, analysisCache, analysisIndexer,
		calculator, scorer, checker, log,
	)

	visionEngine := docengine.NewVisionEngine(
		openai.NewClient(cfg.Engines.Vision.APIKey),
		cfg.Engines.Vision.Model,
	)
	templateEngine := docengine.NewTemplateEngine(
		cfg.Engines.OCR.BaseURL,
		cfg.Engines.OCR.APIKey,
		&http.Client{Timeout: time.Duration(cfg.Engines.OCR.Timeout) * time.Millisecond},
	)
	engineTimeout := time.Duration(cfg.Engines.Vision.Timeout) * time.Millisecond
	reconciler := docengine.NewReconciler(visionEngine, templateEngine, engineTimeout, log)
	documentService := documents.NewService(docStore, reconciler, log)

	// --- Register workers ---
	var workers []*camunda.CamundaWorker

	if cfg.Workers[ra.TaskType].Enabled {
		handler := ra.NewHandler(
			&ra.Config{
				Timeout: time.Duration(cfg.Workers[ra.TaskType].Timeout) * time.Millisecond,
			},
			underwritingService, log,
		)
		workers = append(workers, startWorker(camundaClient, ra.TaskType, cfg.Workers[ra.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[pd.TaskType].Enabled {
		handler := pd.NewHandler(
			&pd.Config{
				Timeout: time.Duration(cfg.Workers[pd.TaskType].Timeout) * time.Millisecond,
			},
			documentService, log,
		)
		workers = append(workers, startWorker(camundaClient, pd.TaskType, cfg.Workers[pd.TaskType], handler.Handle, obs, zapLog))
	}

	if cfg.Workers[sdn.TaskType].Enabled {
		handler := sdn.NewHandler(
			&sdn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[sdn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, sesClient, snsClient, log,
		)
		workers = append(workers, startWorker(camundaClient, sdn.TaskType, cfg.Workers[sdn.TaskType], handler.Handle, obs, zapLog))
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(
	client *camunda.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handlerFunc func(worker.JobClient, entities.Job),
	obs *observability.Observability,
	log *zap.Logger,
) *camunda.CamundaWorker {
	log.Info("registering worker",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)

	w := camunda.NewWorker(client.GetClient(), taskType, wcfg.MaxJobsActive, instrument(obs, taskType, handlerFunc), log)
	w.Start()
	return w
}

// instrument records every job activation on the otel meter, next to the
// per-handler Prometheus counters.
func instrument(
	obs *observability.Observability,
	taskType string,
	handle func(worker.JobClient, entities.Job),
) func(worker.JobClient, entities.Job) {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		handle(client, job)
		obs.RecordJobProcessed(context.Background(), taskType)
		obs.RecordJobDuration(context.Background(), taskType, time.Since(start))
	}
}
