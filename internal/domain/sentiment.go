package domain

// Label is the discrete sentiment class assigned to a record.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
	LabelUnknown  Label = "unknown"
)

// Field names appended to every record by the batch processor.
const (
	FieldSentiment    = "sentiment"
	FieldPolarity     = "polarity"
	FieldSubjectivity = "subjectivity"
	FieldProcessedAt  = "processed_at"
)

// SentimentResult captures one scoring outcome. Polarity is in [-1,1],
// subjectivity in [0,1]; the label is a pure function of polarity.
type SentimentResult struct {
	Polarity     float64
	Subjectivity float64
	Label        Label
}
