package cmd

import (
	"context"
	"fmt"
	"os"

	"material-manager/feature/bulk"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bulkFile string

// bulkCmd applies a patch file to many courses.
var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Apply one patch to many courses",
	Long: `Reads a YAML file listing course ids and the fields to set.

Example patch.yaml:
  ids: [1-basico-a, 1-basico-b, "42"]
  patch:
    activo: false
    anio: 2026`,
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().StringVarP(&bulkFile, "file", "f", "", "YAML file with ids and patch")
	_ = bulkCmd.MarkFlagRequired("file")
	RootCmd.AddCommand(bulkCmd)
}

// readBulkRequest parses a YAML bulk request.
func readBulkRequest(path string) (*bulk.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var req bulk.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &req, nil
}

func runBulk(cmd *cobra.Command, args []string) error {
	req, err := readBulkRequest(bulkFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	svc := bulk.NewService(a.docs, a.cfg.Bulk, a.logger)
	if err := svc.Check(req.IDs, req.Patch); err != nil {
		return err
	}

	resp := bulk.NewResponse(svc.ApplyBulk(ctx, req.IDs, req.Patch))
	for _, r := range resp.Results {
		if !r.Success {
			a.logger.Warn("Course not updated", zap.String("id", r.ID), zap.String("error", r.Error))
		}
	}
	a.logger.Info("Bulk update finished", zap.Int("succeeded", resp.Succeeded), zap.Int("failed", resp.Failed))
	return nil
}
