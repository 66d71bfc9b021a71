package cli

import (
	"context"
	"fmt"

	"atscore/internal/config"
	"atscore/internal/engine"
	"atscore/internal/errors"
	"atscore/internal/taxonomy"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "atscore",
	Short: "A deterministic ATS scoring engine for resumes",
	Long: `Atscore scores a resume against a job description the way an
applicant tracking system would: keyword coverage, semantic similarity,
format quality, and experience relevance. Scoring is fully deterministic,
the same inputs always produce the same scores.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// buildEngine constructs a scoring engine from the configured taxonomy.
// An override file replaces the embedded catalog entirely.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	var (
		tax *taxonomy.Taxonomy
		err error
	)
	if cfg.Engine.TaxonomyFile != "" {
		tax, err = taxonomy.LoadFile(cfg.Engine.TaxonomyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load taxonomy file: %w", err)
		}
	} else {
		tax, err = taxonomy.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded taxonomy: %w", err)
		}
	}
	return engine.New(tax, engine.WithLinguisticBackend(cfg.Engine.LinguisticExtraction)), nil
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
