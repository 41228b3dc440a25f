package cmd

import (
	"errors"
	"fmt"
	"os"

	"material-manager/core/errs"
	"material-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding the .env file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "material-manager",
	Short: "Material Manager Service",
	Long: `Material Manager keeps the versioned school supply lists of every course.
It edits and approves lists, checks them against the product catalogs and publishes them to the shop.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// Console format with debug level gives ISO8601 timestamps for CLI output
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode lets scripts tell bad input and missing courses apart from failures.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return 2
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrNoVersion):
		return 3
	case errors.Is(err, errs.ErrConflict):
		return 4
	default:
		return 1
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing the .env file")
}
