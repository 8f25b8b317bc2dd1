// Package main provides the CLI entry point for tabsum.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/tabsum-go/internal/config"
	"github.com/ukaji3/tabsum-go/internal/logging"
	"github.com/ukaji3/tabsum-go/pkg/tabsum"
	"github.com/ukaji3/tabsum-go/pkg/tabsum/output"
	"go.uber.org/zap/zapcore"
)

var (
	configPath    string
	inputPath     string
	outputPath    string
	format        string
	delimiter     string
	sheet         string
	cellRange     string
	categoryField string
	valueField    string
	previewRows   int
	logLevel      string
	logFormat     string
)

// logSink receives log output. Tests replace it.
var logSink io.Writer = os.Stderr

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabsum [input]",
		Short: "Sum a table's Value column per Category and print JSON",
		Long: `tabsum reads a delimited-text table (or an xlsx sheet), sums the Value
field per Category, and prints the result as indented JSON.

Problems with the input are reported as a JSON object with an "error" key;
the exit status is still 0. With no arguments, data.csv is read.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "Config file path (default: "+config.DefaultFile+" if present)")
	flags.StringVarP(&inputPath, "input", "i", "data.csv", "Input table path")
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&format, "format", "auto", "Input format: auto, csv, xlsx")
	flags.StringVar(&delimiter, "delimiter", ",", `Field delimiter for delimited text ("tab" for tabs)`)
	flags.StringVar(&sheet, "sheet", "", "Sheet name for xlsx input (default: first sheet)")
	flags.StringVar(&cellRange, "range", "", "Cell range for xlsx input, e.g. A1:C20")
	flags.StringVar(&categoryField, "category-field", "Category", "Name of the grouping field")
	flags.StringVar(&valueField, "value-field", "Value", "Name of the summed field")
	flags.IntVar(&previewRows, "preview-rows", tabsum.DefaultPreviewRows, "Rows previewed when required fields are missing")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "console", "Log format: console, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg, err := config.Load(configPath, flagOverrides(cmd.Flags(), args))
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, zapcore.AddSync(logSink))
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger = logger.With("run_id", uuid.NewString())

	logger.Debug("configuration loaded",
		"input", cfg.Input.Path,
		"format", cfg.Input.Format,
		"output", cfg.Output.Path,
	)

	outcome := tabsum.Aggregate(cfg.Input.Path, cfg.Options())
	logOutcome(logger, cfg.Input.Path, outcome)

	if err := writeOutput(cmd.OutOrStdout(), cfg.Output.Path, outcome.Payload()); err != nil {
		logger.Error("failed to write output", "output", cfg.Output.Path, "error", err)
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeOutput writes payload as JSON to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, payload any) error {
	if path == "" {
		return output.Write(stdout, payload)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.Write(f, payload); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// flagOverrides returns a config override applying flags the user set.
// A positional argument takes precedence over --input.
func flagOverrides(flags *pflag.FlagSet, args []string) func(*config.Config) {
	return func(cfg *config.Config) {
		set := func(name string, apply func()) {
			if flags.Changed(name) {
				apply()
			}
		}

		set("input", func() { cfg.Input.Path = inputPath })
		set("output", func() { cfg.Output.Path = outputPath })
		set("format", func() { cfg.Input.Format = format })
		set("delimiter", func() { cfg.Input.Delimiter = delimiter })
		set("sheet", func() { cfg.Input.Sheet = sheet })
		set("range", func() { cfg.Input.Range = cellRange })
		set("category-field", func() { cfg.Aggregate.CategoryField = categoryField })
		set("value-field", func() { cfg.Aggregate.ValueField = valueField })
		set("preview-rows", func() { cfg.Aggregate.PreviewRows = previewRows })
		set("log-level", func() { cfg.Logging.Level = logLevel })
		set("log-format", func() { cfg.Logging.Format = logFormat })

		if len(args) == 1 {
			cfg.Input.Path = args[0]
		}
	}
}

func logOutcome(logger *logging.Logger, path string, outcome tabsum.Outcome) {
	stats := outcome.Stats
	if stats.RowsSkipped > 0 {
		logger.Warn("skipped malformed lines", "input", path, "count", stats.RowsSkipped)
	}

	if outcome.Error != nil {
		logger.Warn("aggregation produced an error payload",
			"input", path,
			"kind", string(outcome.Error.Kind),
			"error", outcome.Error.Message,
		)
		return
	}

	logger.Info("aggregation complete",
		"input", path,
		"rows_read", stats.RowsRead,
		"rows_dropped", stats.RowsDropped,
		"rows_aggregated", stats.RowsAggregated,
		"groups", stats.Groups,
		"total", outcome.Result.Total(),
	)
}
