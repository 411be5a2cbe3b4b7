package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

// CSVStore loads and saves datasets as CSV files with a header row.
type CSVStore struct{}

var _ ports.DatasetLoader = (*CSVStore)(nil)
var _ ports.DatasetSaver = (*CSVStore)(nil)

// NewCSVStore builds the adapter.
func NewCSVStore() *CSVStore {
	return &CSVStore{}
}

// Load reads the file into a dataset; column order follows the header.
func (s *CSVStore) Load(_ context.Context, req ports.LoadRequest) (domain.Dataset, error) {
	file, err := os.Open(req.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Dataset{}, &domain.SourceNotFoundError{Source: req.Source, Err: err}
		}
		return domain.Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read csv %s: %w", req.Source, err)
	}
	if len(records) == 0 {
		return domain.Dataset{}, fmt.Errorf("csv %s has no header row", req.Source)
	}

	columns := records[0]
	rows := make([]domain.Record, 0, len(records)-1)
	for _, raw := range records[1:] {
		row := make(domain.Record, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	dataset := domain.NewDataset(columns, rows)
	if !dataset.HasColumn(req.TextField) {
		return domain.Dataset{}, &domain.SchemaError{Field: req.TextField, Available: columns}
	}

	return dataset, nil
}

// Save writes the dataset to the destination path, creating parent
// directories as needed. An existing file is overwritten.
func (s *CSVStore) Save(_ context.Context, dataset domain.Dataset, opts ports.SaveOptions) error {
	if dir := filepath.Dir(opts.Destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(opts.Destination)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := dataset.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cells := make([]string, len(columns))
	for i := 0; i < dataset.Len(); i++ {
		row := dataset.Row(i)
		for j, col := range columns {
			cells[j] = formatCell(row[col])
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case domain.Label:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
