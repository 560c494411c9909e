package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/chart"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"github.com/iwvelando/mortgage-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagConfig       string
	flagOutputFormat string
	flagLogLevel     string
	flagCSVFile      string
	flagChartFile    string
	flagNoFiles      bool
)

var rootCmd = &cobra.Command{
	Use:   "mortgage-forecast",
	Short: "Home purchase cost projection",
	Long: "Project the monthly costs of buying a home with a mortgage, including the " +
		"interest deduction and ownership levy, and compare them with renting.",
	Version:      version,
	SilenceUsage: true,
	RunE:         runProjection,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.Flags().StringVarP(&flagOutputFormat, "output-format", "o", "", "type of output override: pretty, csv")
	rootCmd.Flags().StringVar(&flagCSVFile, "csv-file", "", "CSV export path override")
	rootCmd.Flags().StringVar(&flagChartFile, "chart-file", "", "chart image path override")
	rootCmd.Flags().BoolVar(&flagNoFiles, "no-files", false, "skip writing the CSV export and chart image")
}

// loadConfiguration reads the config file. Without an explicit --config, a
// missing default file falls back to the built-in defaults.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(flagConfig); errors.Is(err, fs.ErrNotExist) {
			return config.Default()
		}
	}
	return config.LoadConfiguration(flagConfig)
}

func runProjection(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfiguration(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", flagConfig, err)
	}

	logger, err := initializeLogger(conf.Logging, flagLogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if flagOutputFormat != "" {
		outputFormat = flagOutputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if flagCSVFile != "" {
		conf.Output.CSVFile = flagCSVFile
	}
	if flagChartFile != "" {
		conf.Output.ChartFile = flagChartFile
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	projection, err := forecast.Project(logger, conf.Assumptions)
	if err != nil {
		logger.Fatal("failed to compute projection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if !flagNoFiles {
		if err := writeFiles(logger, conf.Output, projection); err != nil {
			logger.Fatal("failed to write output files",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(out, projection)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(out, projection.Records)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return nil
}

// writeFiles writes the CSV export and the chart image. An empty path skips
// the corresponding file.
func writeFiles(logger *zap.Logger, cfg config.OutputConfig, projection *forecast.Projection) error {
	if cfg.CSVFile != "" {
		err := writeFile(cfg.CSVFile, func(w io.Writer) error {
			return output.WriteCSV(w, projection.Records)
		})
		if err != nil {
			return err
		}
		logger.Info("wrote csv export",
			zap.String("op", "main.writeFiles"),
			zap.String("path", cfg.CSVFile),
			zap.Int("rows", len(projection.Records)),
		)
	}

	if cfg.ChartFile != "" {
		opts := chart.Options{
			PurchaseYear: projection.Assumptions.Purchase.Year,
			TermYears:    projection.Terms.TermYears,
		}
		err := writeFile(cfg.ChartFile, func(w io.Writer) error {
			return chart.Render(w, projection.Records, opts)
		})
		if err != nil {
			return err
		}
		logger.Info("wrote chart",
			zap.String("op", "main.writeFiles"),
			zap.String("path", cfg.ChartFile),
		)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err := write(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
