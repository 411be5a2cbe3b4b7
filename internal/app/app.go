package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"SentimentScanner/internal/config"
	"SentimentScanner/internal/infrastructure/inference"
	"SentimentScanner/internal/infrastructure/vader"
	"SentimentScanner/internal/logging"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/sentiment"
	"SentimentScanner/internal/storage"
	"SentimentScanner/internal/usecase"
)

// Application wires configuration to the pipeline and its adapters.
type Application struct {
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. Every run gets its own
// id so log lines from overlapping invocations stay attributable.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	runLogger := baseLogger.With("run_id", uuid.NewString())

	var estimator ports.Estimator
	if cfg.Inference.Endpoint != "" {
		estimator = inference.NewClient(cfg.Inference.Endpoint, cfg.Inference.APIKey)
	} else {
		estimator = vader.New()
	}

	scorer := sentiment.NewScorer(estimator, cfg.Processing.ScoreWorkers)

	processor := usecase.NewProcessor(usecase.ProcessorDeps{
		Scorer:        scorer,
		Clock:         clockwork.NewRealClock(),
		Observer:      usecase.NewLogObserver(runLogger.With("component", "processor")),
		Logger:        runLogger.With("component", "processor"),
		ProgressEvery: cfg.Processing.ProgressEvery,
	})

	registry := storage.NewRegistry()
	csvStore := storage.NewCSVStore()
	jsonStore := storage.NewJSONStore()
	postgres := storage.NewDatabaseStore(storage.FormatPostgres)
	mysql := storage.NewDatabaseStore(storage.FormatMySQL)

	registry.RegisterLoader(storage.FormatCSV, csvStore)
	registry.RegisterSaver(storage.FormatCSV, csvStore)
	registry.RegisterLoader(storage.FormatJSON, jsonStore)
	registry.RegisterSaver(storage.FormatJSON, jsonStore)
	registry.RegisterLoader(storage.FormatPostgres, postgres)
	registry.RegisterSaver(storage.FormatPostgres, postgres)
	registry.RegisterLoader(storage.FormatMySQL, mysql)
	registry.RegisterSaver(storage.FormatMySQL, mysql)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Registry:  registry,
		Processor: processor,
		Logger:    runLogger.With("component", "pipeline"),
	})

	return &Application{pipeline: pipeline}
}

// Run executes a single pipeline run.
func (a *Application) Run(ctx context.Context, req usecase.RunRequest) (usecase.RunResult, error) {
	return a.pipeline.Run(ctx, req)
}
