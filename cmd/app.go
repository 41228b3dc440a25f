package cmd

import (
	"context"
	"fmt"
	"time"

	"material-manager/core/catalog"
	"material-manager/core/config"
	"material-manager/core/database"
	"material-manager/core/lock"
	"material-manager/core/logger"
	"material-manager/core/reconcile"
	"material-manager/core/storage"
	"material-manager/feature/materials/store"
	"material-manager/feature/materials/versions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the shared dependencies every command builds from configuration.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	docs     store.Store
	versions *versions.Store
	woo      *catalog.WooCommerce
	engine   *reconcile.Engine
	storage  storage.Client
}

// bootstrap loads configuration and connects the document store, locks and
// catalogs. Storage and the catalogs are optional: when they cannot be set up
// the features depending on them stay disabled.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg}

	switch cfg.DocStore.Backend {
	case "rest":
		rest, err := store.NewREST(cfg.DocStore)
		if err != nil {
			return nil, fmt.Errorf("failed to create document store: %w", err)
		}
		a.docs = rest
		logg.Info("Using REST document store", zap.String("base_url", cfg.DocStore.BaseURL))
	default:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := store.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate document store: %w", err)
		}
		a.db = db
		a.docs = store.NewSQL(db)
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	// The internal catalog lives in SQL even when documents come over REST
	if a.db == nil {
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Internal catalog unavailable", zap.Error(err))
		} else {
			a.db = db
		}
	}

	locks, err := lock.New(ctx, cfg.Lock, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock backend: %w", err)
	}
	a.versions = versions.New(a.docs, locks, logg)

	a.engine = a.buildEngine()

	client, err := connectStorage(ctx, cfg.Storage)
	switch {
	case err == nil:
		a.storage = client
	case cfg.Storage.Required:
		return nil, err
	default:
		logg.Warn("Object storage unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}

	return a, nil
}

func connectStorage(ctx context.Context, cfg storage.Config) (storage.Client, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	return client, nil
}

// buildEngine lists WooCommerce first and the internal catalog second.
func (a *app) buildEngine() *reconcile.Engine {
	var sources []reconcile.Source

	if woo, err := catalog.NewWooCommerce(a.cfg.Catalog); err != nil {
		a.logger.Warn("WooCommerce catalog disabled", zap.Error(err))
	} else {
		a.woo = woo
		var src reconcile.Source = catalog.NewWooSource(woo, a.cfg.Catalog.PerPage)
		if ttl := a.cfg.Catalog.CacheTTLSeconds; ttl > 0 {
			src = reconcile.Cached(src, time.Duration(ttl)*time.Second)
		}
		sources = append(sources, src)
	}

	if a.db != nil {
		if err := catalog.Migrate(a.db); err != nil {
			a.logger.Warn("Internal catalog disabled", zap.Error(err))
		} else {
			sources = append(sources, catalog.NewInternalSource(catalog.NewInternal(a.db, a.cfg.Catalog.InternalPageSize)))
		}
	}

	if len(sources) == 0 {
		return nil
	}
	return reconcile.NewEngine(a.cfg.Reconcile.Spec(sources...), a.logger)
}

func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
