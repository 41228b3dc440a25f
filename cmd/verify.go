package cmd

import (
	"context"
	"errors"

	"material-manager/feature/availability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// verifyCmd runs an availability check for one course.
var verifyCmd = &cobra.Command{
	Use:   "verify <curso>",
	Short: "Check a course's latest list against the product catalogs",
	Long: `Looks up every item of the course's latest list in WooCommerce and the
internal catalog, then writes price, stock and availability back.

Examples:
  verify 1-basico-a
  verify 42`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if a.engine == nil {
		return errors.New("no product catalog configured")
	}

	svc := availability.NewService(a.versions, a.engine, a.archive(), a.logger)
	report, err := svc.VerifyAvailability(ctx, args[0])
	if err != nil {
		return err
	}

	a.logger.Info("Availability report",
		zap.String("curso", report.Curso),
		zap.Int("disponible", report.Summary.Available),
		zap.Int("no_disponible", report.Summary.Unavailable),
		zap.Int("no_encontrado", report.Summary.NotFound),
		zap.Int("lookup_errors", report.Summary.LookupErrors),
		zap.Bool("partial", report.Partial),
		zap.String("archive_key", report.ArchiveKey),
	)
	for _, item := range report.Items {
		if item.Disponibilidad != "disponible" {
			a.logger.Info("Item not available",
				zap.String("id", item.ID),
				zap.String("nombre", item.Nombre),
				zap.String("disponibilidad", string(item.Disponibilidad)),
			)
		}
	}
	return nil
}
