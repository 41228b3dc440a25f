package cmd

import (
	"context"

	"material-manager/feature/materials"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// approveCmd approves every item of a course's latest list.
var approveCmd = &cobra.Command{
	Use:   "approve <curso>",
	Short: "Approve a course's latest list",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

func init() {
	RootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := materials.NewService(a.versions, a.logger).ApproveAll(ctx, args[0])
	if err != nil {
		return err
	}
	a.logger.Info("List approved",
		zap.String("curso", args[0]),
		zap.Int("total", res.Total),
		zap.Int("newly_approved", res.NewlyApproved),
		zap.String("estado_revision", res.EstadoRevision),
	)
	return nil
}
