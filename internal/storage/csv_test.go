package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

func TestCSVLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reviews.csv")
	content := "id,review,rating\n1,Excellent product!,5\n2,Terrible quality,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	dataset, err := NewCSVStore().Load(context.Background(), ports.LoadRequest{Source: path, TextField: "review"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if dataset.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", dataset.Len())
	}
	if cols := dataset.Columns(); cols[0] != "id" || cols[1] != "review" || cols[2] != "rating" {
		t.Fatalf("unexpected column order: %v", cols)
	}
	if dataset.Value(1, "review") != "Terrible quality" {
		t.Fatalf("unexpected value: %v", dataset.Value(1, "review"))
	}
}

func TestCSVLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewCSVStore().Load(context.Background(), ports.LoadRequest{
		Source:    filepath.Join(t.TempDir(), "absent.csv"),
		TextField: "text",
	})

	var notFound *domain.SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SourceNotFoundError, got %v", err)
	}
}

func TestCSVLoadMissingTextColumn(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("id,body\n1,hello\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewCSVStore().Load(context.Background(), ports.LoadRequest{Source: path, TextField: "text"})

	var schemaErr *domain.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Available) != 2 || schemaErr.Available[0] != "id" || schemaErr.Available[1] != "body" {
		t.Fatalf("available fields = %v", schemaErr.Available)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	dataset := domain.NewDataset([]string{"text", "sentiment", "polarity"}, []domain.Record{
		{"text": "hello, world", "sentiment": domain.LabelPositive, "polarity": 0.25},
		{"text": "bye", "sentiment": domain.LabelNegative, "polarity": -0.5},
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")
	store := NewCSVStore()
	if err := store.Save(context.Background(), dataset, ports.SaveOptions{Destination: path}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := store.Load(context.Background(), ports.LoadRequest{Source: path, TextField: "text"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", loaded.Len())
	}
	if loaded.Value(0, "text") != "hello, world" {
		t.Fatalf("comma field corrupted: %v", loaded.Value(0, "text"))
	}
	if loaded.Value(1, "sentiment") != "negative" {
		t.Fatalf("unexpected sentiment: %v", loaded.Value(1, "sentiment"))
	}
	if loaded.Value(1, "polarity") != "-0.5" {
		t.Fatalf("unexpected polarity cell: %v", loaded.Value(1, "polarity"))
	}
}
