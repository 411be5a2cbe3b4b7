package sentiment

import (
	"context"
	"fmt"
	"sync"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1

	defaultWorkers = 4
)

// Scorer derives discrete sentiment labels from an opaque
// polarity/subjectivity estimator. It holds no mutable state, so a
// single instance is safe for concurrent use.
type Scorer struct {
	estimator ports.Estimator
	workers   int
}

// NewScorer wires the estimator; workers bounds BatchScore fan-out and
// defaults to 4 when non-positive.
func NewScorer(estimator ports.Estimator, workers int) *Scorer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Scorer{estimator: estimator, workers: workers}
}

// Score normalizes the text, estimates polarity and subjectivity, and
// derives the label. Estimator failures propagate to the caller.
func (s *Scorer) Score(ctx context.Context, text string) (domain.SentimentResult, error) {
	if s.estimator == nil {
		return domain.SentimentResult{}, fmt.Errorf("estimator is not configured")
	}

	polarity, subjectivity, err := s.estimator.Estimate(ctx, Normalize(text))
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("estimate sentiment: %w", err)
	}

	return domain.SentimentResult{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        LabelFor(polarity),
	}, nil
}

// BatchScore scores each text independently and returns results in
// input order. Scoring fans out across a bounded worker pool; the first
// failure (lowest index) is reported.
func (s *Scorer) BatchScore(ctx context.Context, texts []string) ([]domain.SentimentResult, error) {
	results := make([]domain.SentimentResult, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, text := range texts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = s.Score(ctx, text)
		}(i, text)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
	}

	return results, nil
}

// LabelFor maps polarity to a label: above 0.1 positive, below -0.1
// negative, everything else (boundaries included) neutral.
func LabelFor(polarity float64) domain.Label {
	switch {
	case polarity > positiveThreshold:
		return domain.LabelPositive
	case polarity < negativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}
