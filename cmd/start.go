package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"material-manager/core/loader"
	"material-manager/core/logger"
	"material-manager/core/middleware/auth"
	"material-manager/core/middleware/rayid"
	"material-manager/feature/availability"
	"material-manager/feature/bulk"
	"material-manager/feature/integrity"
	"material-manager/feature/materials"
	"material-manager/feature/publish"
	"material-manager/feature/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "material-manager/docs/swagger"
)

// @title Material Manager API
// @version 1.0
// @description API for versioned school supply lists.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the material manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()
		zap.ReplaceGlobals(a.logger)

		app, err := newServer(a)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			errCh <- app.Listen(a.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server stopped: %w", err)
		case <-ctx.Done():
		}
		a.logger.Info("Shutting down server")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newServer mounts the middleware chain and every enabled feature.
func newServer(a *app) (*fiber.App, error) {
	logg := a.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             a.cfg.Server.BodyLimitBytes(),
	})

	mgr := loader.NewManager()
	mgr.Register(materials.NewFeature(a.versions, logg))
	mgr.Register(availability.NewFeature(a.versions, a.engine, a.archive(), logg))
	mgr.Register(bulk.NewFeature(a.docs, a.cfg.Bulk, logg))
	mgr.Register(search.NewFeature(a.docs, a.cfg.Search, logg))
	mgr.Register(publish.NewFeature(a.versions, a.tags(), a.storage, a.cfg.Storage.Bucket, logg))
	mgr.Register(integrity.NewFeature(a.storage, a.cfg.Storage.Bucket, logg, a.db))

	// RayID first so every later log line carries it
	app.Use(rayid.New())
	app.Use(requestLog(logg))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		enabled := fiber.Map{}
		for _, f := range mgr.Features() {
			enabled[f.Name()] = f.IsEnabled()
		}
		return c.JSON(fiber.Map{"status": "ok", "features": enabled})
	})

	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	for _, f := range mgr.Features() {
		logg.Info("Feature", zap.String("name", f.Name()), zap.Bool("enabled", f.IsEnabled()))
	}
	return app, nil
}

func requestLog(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		l := logger.WithRayID(logg, c)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(started)),
		}
		if err != nil {
			l.Error("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		l.Info("Request", fields...)
		return nil
	}
}

// archive is nil when object storage is unavailable.
func (a *app) archive() *availability.Archive {
	if a.storage == nil {
		return nil
	}
	return availability.NewArchive(a.storage, a.cfg.Storage.Bucket)
}

// tags returns an untyped nil without WooCommerce so the publish feature stays disabled.
func (a *app) tags() publish.TagClient {
	if a.woo == nil {
		return nil
	}
	return a.woo
}
