package vader

import (
	"context"

	"github.com/jonreiter/govader"

	"SentimentScanner/internal/ports"
)

// Estimator scores text with the VADER lexicon. Polarity is the
// compound score in [-1,1]; subjectivity is the proportion of the text
// that carries any sentiment (1 minus the neutral proportion).
type Estimator struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ ports.Estimator = (*Estimator)(nil)

// New builds the analyzer once; the lexicon is read-only afterwards,
// so the estimator is safe for concurrent use.
func New() *Estimator {
	return &Estimator{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Estimate implements ports.Estimator.
func (e *Estimator) Estimate(_ context.Context, text string) (float64, float64, error) {
	scores := e.analyzer.PolarityScores(text)

	subjectivity := 1 - scores.Neutral
	if subjectivity < 0 {
		subjectivity = 0
	}
	if subjectivity > 1 {
		subjectivity = 1
	}

	return scores.Compound, subjectivity, nil
}
