package storage

import (
	"fmt"

	"SentimentScanner/internal/domain"
	"SentimentScanner/internal/ports"
)

// Supported format names, matching the CLI surface.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatPostgres = "postgres"
	FormatMySQL    = "mysql"
)

// IsDatabase reports whether the format is backed by a SQL database.
func IsDatabase(format string) bool {
	return format == FormatPostgres || format == FormatMySQL
}

// ValidateRoute rejects source/sink pairings the pipeline does not
// support: file formats only write back to the same file format, and
// database sources only write to database sinks.
func ValidateRoute(sourceType, outputType string) error {
	switch {
	case IsDatabase(sourceType) && IsDatabase(outputType):
		return nil
	case sourceType == outputType && !IsDatabase(sourceType):
		return nil
	default:
		return &domain.UnsupportedCombinationError{
			Reason: fmt.Sprintf("%s source does not support %s output", sourceType, outputType),
		}
	}
}

// Registry maps format names to their loader and saver adapters.
type Registry struct {
	loaders map[string]ports.DatasetLoader
	savers  map[string]ports.DatasetSaver
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loaders: map[string]ports.DatasetLoader{},
		savers:  map[string]ports.DatasetSaver{},
	}
}

// RegisterLoader adds or replaces the loader for a format.
func (r *Registry) RegisterLoader(format string, loader ports.DatasetLoader) {
	r.loaders[format] = loader
}

// RegisterSaver adds or replaces the saver for a format.
func (r *Registry) RegisterSaver(format string, saver ports.DatasetSaver) {
	r.savers[format] = saver
}

// ResolveLoader returns the loader for a format or an error if absent.
func (r *Registry) ResolveLoader(format string) (ports.DatasetLoader, error) {
	if loader, ok := r.loaders[format]; ok {
		return loader, nil
	}
	return nil, &domain.UnsupportedCombinationError{Reason: fmt.Sprintf("no loader registered for format %s", format)}
}

// ResolveSaver returns the saver for a format or an error if absent.
func (r *Registry) ResolveSaver(format string) (ports.DatasetSaver, error) {
	if saver, ok := r.savers[format]; ok {
		return saver, nil
	}
	return nil, &domain.UnsupportedCombinationError{Reason: fmt.Sprintf("no saver registered for format %s", format)}
}
