package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"SentimentScanner/internal/domain"
)

type stubEstimator struct {
	polarity     float64
	subjectivity float64
	err          error
	byText       map[string]float64

	mu       sync.Mutex
	received []string
}

func (s *stubEstimator) Estimate(_ context.Context, text string) (float64, float64, error) {
	s.mu.Lock()
	s.received = append(s.received, text)
	s.mu.Unlock()
	if s.err != nil {
		return 0, 0, s.err
	}
	if s.byText != nil {
		if polarity, ok := s.byText[text]; ok {
			return polarity, s.subjectivity, nil
		}
		return 0, 0, fmt.Errorf("unexpected text %q", text)
	}
	return s.polarity, s.subjectivity, nil
}

func TestLabelThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		polarity float64
		want     domain.Label
	}{
		{0.5, domain.LabelPositive},
		{0.1000001, domain.LabelPositive},
		{0.1, domain.LabelNeutral},
		{0, domain.LabelNeutral},
		{-0.1, domain.LabelNeutral},
		{-0.1000001, domain.LabelNegative},
		{-0.5, domain.LabelNegative},
	}

	for _, tc := range cases {
		if got := LabelFor(tc.polarity); got != tc.want {
			t.Fatalf("LabelFor(%v) = %s, want %s", tc.polarity, got, tc.want)
		}
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	est := &stubEstimator{polarity: 0.42, subjectivity: 0.9}
	scorer := NewScorer(est, 1)

	result, err := scorer.Score(context.Background(), "LOUD https://example.com noise")
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}

	if result.Polarity != 0.42 || result.Subjectivity != 0.9 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Label != domain.LabelPositive {
		t.Fatalf("unexpected label: %s", result.Label)
	}
	if len(est.received) != 1 || est.received[0] != "loud  noise" {
		t.Fatalf("estimator received %q, want normalized text", est.received)
	}
}

func TestScorePropagatesEstimatorError(t *testing.T) {
	t.Parallel()

	boom := errors.New("lexicon unavailable")
	scorer := NewScorer(&stubEstimator{err: boom}, 1)

	if _, err := scorer.Score(context.Background(), "some text"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped estimator error, got %v", err)
	}
}

func TestBatchScoreMatchesIndividualCalls(t *testing.T) {
	t.Parallel()

	byText := map[string]float64{
		"a": 0.3,
		"b": -0.3,
		"c": 0.0,
	}
	texts := []string{"a", "b", "c"}

	batch := NewScorer(&stubEstimator{byText: byText, subjectivity: 0.5}, 3)
	results, err := batch.BatchScore(context.Background(), texts)
	if err != nil {
		t.Fatalf("BatchScore error: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}

	single := NewScorer(&stubEstimator{byText: byText, subjectivity: 0.5}, 1)
	for i, text := range texts {
		want, err := single.Score(context.Background(), text)
		if err != nil {
			t.Fatalf("Score(%q) error: %v", text, err)
		}
		if results[i] != want {
			t.Fatalf("result %d = %+v, want %+v", i, results[i], want)
		}
	}
}

func TestBatchScoreReportsFailure(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(&stubEstimator{byText: map[string]float64{"fine": 0.2}}, 2)

	if _, err := scorer.BatchScore(context.Background(), []string{"fine", "broken"}); err == nil {
		t.Fatal("expected error for unmapped text")
	}
}
