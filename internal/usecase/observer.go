package usecase

import (
	"log/slog"

	"SentimentScanner/internal/ports"
)

// LogObserver routes processor signals to structured logging.
type LogObserver struct {
	logger *slog.Logger
}

var _ ports.Observer = (*LogObserver)(nil)

// NewLogObserver wraps the logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Progress reports batch advancement.
func (o *LogObserver) Progress(processed, total int) {
	if o.logger != nil {
		o.logger.Info("progress", "processed", processed, "total", total)
	}
}

// RowFallback reports a row that received the unknown fallback.
func (o *LogObserver) RowFallback(row int, reason string) {
	if o.logger != nil {
		o.logger.Warn("row fallback", "row", row, "reason", reason)
	}
}
