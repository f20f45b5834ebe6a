package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inventario-hardware/internal/config"
	"inventario-hardware/internal/export"
	"inventario-hardware/internal/logging"
	"inventario-hardware/internal/store"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "inventario [command]",
	Short: "Maintenance commands for the hardware inventory database",
	Long: `inventario runs maintenance tasks against the database configured through
DB_DSN (or the YAML file named by INVENTARIO_CONFIG).

Examples:
  # create the database and the hardware_data table
  inventario provision

  # write the full inventory spreadsheet to a file
  inventario export --out inventario_hardware.xlsx`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create the database and table if they do not exist",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withGateway(cmd.Context(), func(ctx context.Context, _ *config.Config, gw *store.Gateway, _ *zap.Logger) error {
			if err := gw.Provision(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database provisioned")
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every record to an xlsx file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withGateway(cmd.Context(), func(ctx context.Context, cfg *config.Config, gw *store.Gateway, logger *zap.Logger) error {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			records, err := gw.ListAll(ctx)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := export.NewFormatter(cfg.ExportLocale, loc).Write(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			logger.Info("export written", zap.String("path", outPath), zap.Int("rows", len(records)))
			fmt.Fprintf(cmd.OutOrStdout(), "%d records written to %s\n", len(records), outPath)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&outPath, "out", "o", export.Filename, "Output file")
	rootCmd.AddCommand(provisionCmd, exportCmd)
}

func withGateway(ctx context.Context, fn func(context.Context, *config.Config, *store.Gateway, *zap.Logger) error) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, "console", "inventario")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	gw, err := store.Open(ctx, store.Options{
		DSN:           cfg.DatabaseDSN,
		AdminDatabase: cfg.AdminDatabase,
		MaxConns:      cfg.MaxConns,
	}, logger)
	if err != nil {
		return err
	}
	defer gw.Close()

	return fn(ctx, cfg, gw, logger)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
