package cmd

import (
	"context"
	"strings"

	"material-manager/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchLimit int

// searchCmd searches every course's latest list.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search materials across the latest list of every course",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of hits to print")
	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	svc := search.NewService(a.docs, a.cfg.Search, a.logger)
	res, err := svc.SearchAcrossLists(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	a.logger.Info("Search results",
		zap.String("query", res.Query),
		zap.Int("hits", len(res.Hits)),
		zap.Int("colegios", res.Totals.Colegios),
		zap.Int("cursos", res.Totals.Cursos),
		zap.Int("matricula", res.Totals.Matricula),
		zap.Int("total_productos", res.Totals.TotalProductos),
		zap.Bool("truncated", res.Truncated),
	)
	for i, hit := range res.Hits {
		if i == searchLimit {
			a.logger.Info("Additional hits not shown", zap.Int("count", len(res.Hits)-searchLimit))
			break
		}
		a.logger.Info("Hit",
			zap.String("colegio", hit.ColegioNombre),
			zap.String("curso", hit.NombreCurso),
			zap.String("material", hit.Material.Nombre),
			zap.Int("total_productos", hit.TotalProductos),
		)
	}
	return nil
}
