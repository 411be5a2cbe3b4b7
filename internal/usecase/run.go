package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/storage"
	"SentimentScanner/internal/summary"
)

// RunRequest describes one end-to-end pipeline execution.
type RunRequest struct {
	SourceType   string
	Source       string
	OutputType   string
	Output       string
	TextField    string
	Query        string
	Table        string
	IfExists     ports.IfExists
	WriteSummary bool
}

// RunResult reports what a successful run produced.
type RunResult struct {
	Records     int
	Stats       Stats
	Report      summary.Report
	SummaryPath string
}

// PipelineDeps wires the adapters into the run orchestration.
type PipelineDeps struct {
	Registry  *storage.Registry
	Processor *Processor
	Logger    *slog.Logger
}

// Pipeline executes load, process, save and summary as one run. The
// dataset is owned by the run and dropped when it returns.
type Pipeline struct {
	registry  *storage.Registry
	processor *Processor
	logger    *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		registry:  deps.Registry,
		processor: deps.Processor,
		logger:    deps.Logger,
	}
}

// Run validates the route, loads the source, scores every record and
// persists the result. A plain-text summary is written next to file
// outputs when requested; database sinks carry no summary file.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if err := validateRequest(req); err != nil {
		return RunResult{}, err
	}

	loader, err := p.registry.ResolveLoader(req.SourceType)
	if err != nil {
		return RunResult{}, err
	}
	saver, err := p.registry.ResolveSaver(req.OutputType)
	if err != nil {
		return RunResult{}, err
	}

	dataset, err := loader.Load(ctx, ports.LoadRequest{
		Source:    req.Source,
		TextField: req.TextField,
		Query:     req.Query,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("load %s source: %w", req.SourceType, err)
	}
	p.info("dataset loaded", "source_type", req.SourceType, "rows", dataset.Len())

	scored, stats, err := p.processor.Process(ctx, dataset, req.TextField)
	if err != nil {
		return RunResult{}, fmt.Errorf("process dataset: %w", err)
	}

	err = saver.Save(ctx, scored, ports.SaveOptions{
		Destination: req.Output,
		Table:       req.Table,
		IfExists:    req.IfExists,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("save %s output: %w", req.OutputType, err)
	}
	p.info("dataset saved", "output_type", req.OutputType, "rows", scored.Len())

	result := RunResult{
		Records: scored.Len(),
		Stats:   stats,
		Report:  summary.Aggregate(scored),
	}

	if req.WriteSummary && !storage.IsDatabase(req.OutputType) {
		path := summaryPath(req.Output)
		if err := writeSummary(path, result.Report); err != nil {
			return RunResult{}, err
		}
		result.SummaryPath = path
		p.info("summary written", "path", path)
	}

	return result, nil
}

func validateRequest(req RunRequest) error {
	if req.TextField == "" {
		return &domain.UnsupportedCombinationError{Reason: "text field must not be empty"}
	}
	if err := storage.ValidateRoute(req.SourceType, req.OutputType); err != nil {
		return err
	}
	if storage.IsDatabase(req.SourceType) && req.Query == "" {
		return &domain.UnsupportedCombinationError{Reason: "query is required for database sources"}
	}
	if storage.IsDatabase(req.OutputType) && req.Table == "" {
		return &domain.UnsupportedCombinationError{Reason: "table is required for database output"}
	}
	return nil
}

// summaryPath places the report next to the primary output, swapping
// the extension for the _summary.txt suffix.
func summaryPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_summary.txt"
}

func writeSummary(path string, report summary.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create summary dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(report.Render()), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
