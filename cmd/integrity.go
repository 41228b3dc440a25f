package cmd

import (
	"context"
	"fmt"

	"material-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage structure and database schema",
	Long:  `Checks that the storage bucket has the report and export folders and that the database tables match the models.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	integrityCmd.AddCommand(structureCmd, schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.logger

	svc := integrity.NewService(a.storage, a.cfg.Storage.Bucket, logg, a.db)

	if runStructure {
		report, err := svc.Structure(ctx, fixFlag)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}
		switch {
		case len(report.Created) > 0:
			logg.Info("Created missing folders", zap.Strings("folders", report.Created))
		case report.Intact():
			logg.Info("Bucket layout is intact", zap.String("bucket", report.Bucket))
		default:
			logg.Warn("Missing folders, rerun with --fix to create them", zap.Strings("missing", report.Missing()))
		}
	}

	if runSchema {
		report, err := svc.Schema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		for table, tbl := range report.Tables {
			if tbl.Status == "ok" {
				logg.Info("Table matches", zap.String("table", table))
				continue
			}
			logg.Warn("Table differs",
				zap.String("table", table),
				zap.Strings("missing_columns", tbl.MissingColumns),
				zap.Strings("type_mismatches", tbl.TypeMismatches))
		}
		for _, e := range report.Errors {
			logg.Warn("Schema check error", zap.String("error", e))
		}
		if !report.Matched {
			return fmt.Errorf("database schema does not match the models")
		}
	}

	return nil
}
