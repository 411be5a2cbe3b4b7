package storage

import (
	"errors"
	"testing"

	"SentimentScanner/internal/domain"
)

func TestRegistryResolution(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	store := NewCSVStore()
	registry.RegisterLoader(FormatCSV, store)
	registry.RegisterSaver(FormatCSV, store)

	if _, err := registry.ResolveLoader(FormatCSV); err != nil {
		t.Fatalf("ResolveLoader error: %v", err)
	}
	if _, err := registry.ResolveSaver(FormatCSV); err != nil {
		t.Fatalf("ResolveSaver error: %v", err)
	}

	var comboErr *domain.UnsupportedCombinationError
	if _, err := registry.ResolveLoader("parquet"); !errors.As(err, &comboErr) {
		t.Fatalf("expected UnsupportedCombinationError, got %v", err)
	}
	if _, err := registry.ResolveSaver("parquet"); !errors.As(err, &comboErr) {
		t.Fatalf("expected UnsupportedCombinationError, got %v", err)
	}
}

func TestValidateRoute(t *testing.T) {
	t.Parallel()

	valid := [][2]string{
		{FormatCSV, FormatCSV},
		{FormatJSON, FormatJSON},
		{FormatPostgres, FormatPostgres},
		{FormatPostgres, FormatMySQL},
		{FormatMySQL, FormatPostgres},
	}
	for _, route := range valid {
		if err := ValidateRoute(route[0], route[1]); err != nil {
			t.Fatalf("%s -> %s should be supported: %v", route[0], route[1], err)
		}
	}

	invalid := [][2]string{
		{FormatCSV, FormatJSON},
		{FormatJSON, FormatCSV},
		{FormatCSV, FormatPostgres},
		{FormatMySQL, FormatJSON},
	}
	for _, route := range invalid {
		err := ValidateRoute(route[0], route[1])
		var comboErr *domain.UnsupportedCombinationError
		if !errors.As(err, &comboErr) {
			t.Fatalf("%s -> %s should be rejected, got %v", route[0], route[1], err)
		}
	}
}
