package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/mortgage-forecast/internal/server"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServerConfig  string
	flagAddress       string
	flagMaxUploadSize string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&flagAddress, "address", "", "listen address override")
	serveCmd.Flags().StringVar(&flagMaxUploadSize, "max-upload-size", "", "maximum upload size override (e.g. 256K, 10M)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := server.LoadConfig(flagServerConfig)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", flagServerConfig, err)
	}
	if flagAddress != "" {
		cfg.Address = flagAddress
	}
	if flagMaxUploadSize != "" {
		size, err := server.ParseSize(flagMaxUploadSize)
		if err != nil {
			return err
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, flagLogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("op", "main.serve"),
		zap.String("address", cfg.Address),
		zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		zap.String("version", version),
	)

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version)
	if err := server.Run(ctx, logger, cfg, handler); err != nil {
		logger.Error("server stopped with error",
			zap.String("op", "main.serve"),
			zap.Error(err),
		)
		return err
	}
	return nil
}
