package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/sentiment"
)

const defaultProgressEvery = 100

// Stats counts the row-level outcomes of one Process call. Fallback
// rows never abort a run; the counts make them observable.
type Stats struct {
	Total           int
	Scored          int
	EmptyText       int
	ScoringFailures int
}

// ProcessorDeps wires the scorer and the injected observability/time
// dependencies into the batch processor.
type ProcessorDeps struct {
	Scorer        *sentiment.Scorer
	Clock         clockwork.Clock
	Observer      ports.Observer
	Logger        *slog.Logger
	ProgressEvery int
}

// Processor applies normalization and scoring to every record of a
// dataset, with per-row fault isolation.
type Processor struct {
	scorer        *sentiment.Scorer
	clock         clockwork.Clock
	observer      ports.Observer
	logger        *slog.Logger
	progressEvery int
}

// NewProcessor constructs the processor; clock and observer default to
// the real clock and a no-op sink.
func NewProcessor(deps ProcessorDeps) *Processor {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	observer := deps.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	progressEvery := deps.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}
	return &Processor{
		scorer:        deps.Scorer,
		clock:         clock,
		observer:      observer,
		logger:        deps.Logger,
		progressEvery: progressEvery,
	}
}

// Process returns a new dataset with the same rows in the same order,
// each extended with sentiment, polarity, subjectivity and a single
// processed_at timestamp shared by the whole call.
//
// Rows with a missing or blank text value fall back to the unknown
// label with zero scores. Estimator failures on non-empty text degrade
// the same way instead of aborting the run; only context cancellation
// stops the batch.
func (p *Processor) Process(ctx context.Context, dataset domain.Dataset, textField string) (domain.Dataset, Stats, error) {
	if !dataset.HasColumn(textField) {
		return domain.Dataset{}, Stats{}, &domain.SchemaError{Field: textField, Available: dataset.Columns()}
	}

	total := dataset.Len()
	stats := Stats{Total: total}
	processedAt := p.clock.Now().UTC().Format(time.RFC3339)

	labels := make([]any, total)
	polarities := make([]any, total)
	subjectivities := make([]any, total)
	timestamps := make([]any, total)
	counts := map[domain.Label]int{}

	for i := 0; i < total; i++ {
		text, ok := coerceText(dataset.Value(i, textField))

		result := domain.SentimentResult{Label: domain.LabelUnknown}
		switch {
		case !ok:
			stats.EmptyText++
			p.observer.RowFallback(i+1, "empty or null text")
		default:
			scored, err := p.scorer.Score(ctx, text)
			if err != nil {
				if ctx.Err() != nil {
					return domain.Dataset{}, stats, fmt.Errorf("process row %d: %w", i+1, err)
				}
				stats.ScoringFailures++
				p.observer.RowFallback(i+1, "scoring failed: "+err.Error())
				p.warn("scoring failed", "row", i+1, "error", err)
			} else {
				result = scored
				stats.Scored++
			}
		}

		labels[i] = result.Label
		polarities[i] = result.Polarity
		subjectivities[i] = result.Subjectivity
		timestamps[i] = processedAt
		counts[result.Label]++

		if (i+1)%p.progressEvery == 0 {
			p.observer.Progress(i+1, total)
		}
	}

	scored, err := dataset.Append(
		domain.Column{Name: domain.FieldSentiment, Values: labels},
		domain.Column{Name: domain.FieldPolarity, Values: polarities},
		domain.Column{Name: domain.FieldSubjectivity, Values: subjectivities},
		domain.Column{Name: domain.FieldProcessedAt, Values: timestamps},
	)
	if err != nil {
		return domain.Dataset{}, stats, fmt.Errorf("attach sentiment fields: %w", err)
	}

	p.info("processing complete", "rows", total, "distribution", distributionSummary(counts))
	return scored, stats, nil
}

// coerceText turns the field value into scoring input. Nil values and
// strings that are blank after trimming report ok=false; any other
// scalar is rendered as text.
func coerceText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

func distributionSummary(counts map[domain.Label]int) map[string]int {
	out := make(map[string]int, len(counts))
	for label, n := range counts {
		out[string(label)] = n
	}
	return out
}

func (p *Processor) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Processor) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

type nopObserver struct{}

func (nopObserver) Progress(int, int)       {}
func (nopObserver) RowFallback(int, string) {}
