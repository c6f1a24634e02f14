package cmd

import (
	"context"
	"errors"
	"fmt"

	"returns-bridge/core/config"
	"returns-bridge/core/database"
	"returns-bridge/core/logger"
	"returns-bridge/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the database schema and report storage",
	Long:  `Checks that CAD_IPE matches the line item model and that the report bucket exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the line item table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the report bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, storageCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
}

func runIntegrityChecks(ctx context.Context, runSchema, runStorage bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := newArchiveClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	provider := database.NewProvider(cfg.Database, logg)
	defer provider.Close()

	svc := integrity.NewService(provider, client, cfg.Storage.Bucket, cfg.Storage.Region, logg)

	if runSchema {
		logg.Info("Checking line item schema...")
		report, err := svc.CheckSchema(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		if report.Matched {
			logg.Info("Schema matches the line item model.", zap.String("table", report.Table))
		} else {
			logg.Warn("Schema mismatches found", zap.String("table", report.Table))
			if len(report.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.Strings("columns", report.MissingColumns))
			}
			if len(report.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.Strings("mismatches", report.TypeMismatches))
			}
		}
		if len(report.ExtraColumns) > 0 {
			logg.Info("Unmapped columns", zap.Strings("columns", report.ExtraColumns))
		}
	}

	if runStorage {
		logg.Info("Checking report bucket...")
		report, err := svc.CheckStorage(ctx)
		if errors.Is(err, integrity.ErrStorageDisabled) {
			logg.Info("Report archive is disabled, skipping storage check.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}

		switch {
		case report.Exists:
			logg.Info("Report bucket exists.", zap.String("bucket", report.Bucket))
		case fixFlag:
			logg.Info("Creating report bucket...", zap.String("bucket", report.Bucket))
			if err := svc.FixStorage(ctx); err != nil {
				return err
			}
			logg.Info("Report bucket created successfully.")
		default:
			logg.Warn("Report bucket is missing", zap.String("bucket", report.Bucket))
			logg.Info("Run with --fix to create it.")
		}
	}

	return nil
}
