package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

// JSONStore loads and saves datasets as JSON arrays of objects. A
// top-level object is accepted on load as a one-row dataset.
type JSONStore struct{}

var _ ports.DatasetLoader = (*JSONStore)(nil)
var _ ports.DatasetSaver = (*JSONStore)(nil)

// NewJSONStore builds the adapter.
func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// Load materializes the file. Column order follows first appearance
// across records, so a round trip keeps the schema stable.
func (s *JSONStore) Load(_ context.Context, req ports.LoadRequest) (domain.Dataset, error) {
	data, err := os.ReadFile(req.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Dataset{}, &domain.SourceNotFoundError{Source: req.Source, Err: err}
		}
		return domain.Dataset{}, fmt.Errorf("read json: %w", err)
	}

	var raws []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		raws = []json.RawMessage{trimmed}
	} else if err := json.Unmarshal(trimmed, &raws); err != nil {
		return domain.Dataset{}, fmt.Errorf("parse json %s: %w", req.Source, err)
	}

	var columns []string
	seen := map[string]struct{}{}
	rows := make([]domain.Record, 0, len(raws))

	for i, raw := range raws {
		row, keys, err := decodeObject(raw)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("record %d in %s: %w", i, req.Source, err)
		}
		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
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

// decodeObject walks the object token by token so key order survives
// the trip through Go maps.
func decodeObject(raw json.RawMessage) (domain.Record, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("read token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	row := domain.Record{}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("read key: %w", err)
		}
		key := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("decode value for %s: %w", key, err)
		}

		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = value
	}

	return row, keys, nil
}

// Save writes the dataset as an indented array of objects, keeping the
// dataset's column order inside every object.
func (s *JSONStore) Save(_ context.Context, dataset domain.Dataset, opts ports.SaveOptions) error {
	if dir := filepath.Dir(opts.Destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("[")
	columns := dataset.Columns()

	for i := 0; i < dataset.Len(); i++ {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		row := dataset.Row(i)
		for j, col := range columns {
			if j > 0 {
				buf.WriteString(",")
			}
			key, err := json.Marshal(col)
			if err != nil {
				return fmt.Errorf("marshal key %s: %w", col, err)
			}
			value, err := json.Marshal(row[col])
			if err != nil {
				return fmt.Errorf("marshal %s of row %d: %w", col, i, err)
			}
			buf.WriteString("\n    ")
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(value)
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n]\n")

	if err := os.WriteFile(opts.Destination, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}
