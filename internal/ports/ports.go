package ports

import (
	"context"

	"SentimentScanner/internal/domain"
)

// IfExists selects the behavior when the output destination already
// holds data (database table sinks).
type IfExists string

const (
	IfExistsFail    IfExists = "fail"
	IfExistsReplace IfExists = "replace"
	IfExistsAppend  IfExists = "append"
)

// LoadRequest carries everything a loader needs to materialize a dataset.
// Source is a file path for file formats and a DSN for databases; Query
// is only meaningful for database sources.
type LoadRequest struct {
	Source    string
	TextField string
	Query     string
}

// SaveOptions describes the sink. Destination is a file path for file
// formats and a DSN for databases; Table and IfExists apply to
// database sinks only.
type SaveOptions struct {
	Destination string
	Table       string
	IfExists    IfExists
}

// DatasetLoader pulls records from an external source into memory.
type DatasetLoader interface {
	Load(ctx context.Context, req LoadRequest) (domain.Dataset, error)
}

// DatasetSaver persists a scored dataset to an external sink.
type DatasetSaver interface {
	Save(ctx context.Context, dataset domain.Dataset, opts SaveOptions) error
}

// Estimator is the opaque polarity/subjectivity capability. Any
// implementation returning polarity in [-1,1] and subjectivity in [0,1]
// is substitutable.
type Estimator interface {
	Estimate(ctx context.Context, text string) (polarity, subjectivity float64, err error)
}

// Observer receives progress and row-level warning signals during batch
// processing, so the processor carries no global logging side effects.
type Observer interface {
	Progress(processed, total int)
	RowFallback(row int, reason string)
}
