package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"SentimentScanner/internal/app"
	"SentimentScanner/internal/config"
	"SentimentScanner/internal/logging"
	"SentimentScanner/internal/ports"
	"SentimentScanner/internal/storage"
	"SentimentScanner/internal/usecase"
)

type rootFlags struct {
	configPath string
	logLevel   string
	sourceType string
	source     string
	output     string
	outputType string
	textColumn string
	query      string
	table      string
	ifExists   string
	noSummary  bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sentimentscanner",
		Short:         "Run the sentiment analysis pipeline on data from various sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; real env vars win either way.
			_ = godotenv.Load()

			cfg := config.Load(flags.configPath)
			if flags.logLevel != "" {
				cfg.Logging.Level = flags.logLevel
			}
			logger := logging.New(cfg.Logging.Level)

			req, err := buildRunRequest(flags, cfg)
			if err != nil {
				return err
			}

			application := app.New(cfg, logger)
			result, err := application.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.sourceType, "source-type", "", "Type of data source (csv|json|postgres|mysql)")
	cmd.Flags().StringVar(&flags.source, "source", "", "Source path or connection string")
	cmd.Flags().StringVar(&flags.output, "output", "", "Output path or connection string")
	cmd.Flags().StringVar(&flags.outputType, "output-type", "", "Type of output destination (defaults to source type)")
	cmd.Flags().StringVar(&flags.textColumn, "text-column", "text", "Name of column/field containing text to analyze")
	cmd.Flags().StringVar(&flags.query, "query", "", "SQL query for database sources")
	cmd.Flags().StringVar(&flags.table, "table", "", "Table name for database output")
	cmd.Flags().StringVar(&flags.ifExists, "if-exists", "append", "How to behave if the output table exists (fail|replace|append)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "Skip generating summary statistics")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to YAML configuration file")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	return cmd
}

func buildRunRequest(flags *rootFlags, cfg config.Config) (usecase.RunRequest, error) {
	sourceType := flags.sourceType
	if !knownFormat(sourceType) {
		return usecase.RunRequest{}, fmt.Errorf("--source-type must be one of csv, json, postgres, mysql")
	}

	outputType := flags.outputType
	if outputType == "" {
		outputType = sourceType
	}
	if !knownFormat(outputType) {
		return usecase.RunRequest{}, fmt.Errorf("--output-type must be one of csv, json, postgres, mysql")
	}

	// Database connections may come from the environment instead of
	// the command line, so credentials stay out of shell history.
	source := flags.source
	if source == "" && storage.IsDatabase(sourceType) {
		source = cfg.Database.DSN
	}
	if source == "" {
		return usecase.RunRequest{}, fmt.Errorf("--source is required")
	}

	output := flags.output
	if output == "" && storage.IsDatabase(outputType) {
		output = cfg.Database.DSN
	}
	if output == "" {
		return usecase.RunRequest{}, fmt.Errorf("--output is required")
	}

	ifExists := ports.IfExists(flags.ifExists)
	switch ifExists {
	case ports.IfExistsFail, ports.IfExistsReplace, ports.IfExistsAppend:
	default:
		return usecase.RunRequest{}, fmt.Errorf("--if-exists must be one of fail, replace, append")
	}

	return usecase.RunRequest{
		SourceType:   sourceType,
		Source:       source,
		OutputType:   outputType,
		Output:       output,
		TextField:    flags.textColumn,
		Query:        flags.query,
		Table:        flags.table,
		IfExists:     ifExists,
		WriteSummary: !flags.noSummary,
	}, nil
}

func knownFormat(format string) bool {
	switch format {
	case storage.FormatCSV, storage.FormatJSON, storage.FormatPostgres, storage.FormatMySQL:
		return true
	default:
		return false
	}
}

func printResult(cmd *cobra.Command, result usecase.RunResult) {
	cmd.Printf("Processed %d records\n", result.Records)
	if result.Stats.EmptyText > 0 {
		cmd.Printf("Rows with empty or null text: %d\n", result.Stats.EmptyText)
	}
	if result.Stats.ScoringFailures > 0 {
		cmd.Printf("Rows degraded after scoring failures: %d\n", result.Stats.ScoringFailures)
	}

	if len(result.Report.Distribution) > 0 {
		cmd.Println("Sentiment distribution:")
		for _, entry := range result.Report.Distribution {
			cmd.Printf("  %s: %d (%.1f%%)\n", entry.Label, entry.Count, result.Report.Percent(entry.Label))
		}
	}

	if result.SummaryPath != "" {
		cmd.Printf("Summary written to %s\n", result.SummaryPath)
	}
}
