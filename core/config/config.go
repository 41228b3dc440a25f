package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"material-manager/core/catalog"
	"material-manager/core/database"
	"material-manager/core/lock"
	"material-manager/core/logger"
	"material-manager/core/reconcile"
	"material-manager/core/server"
	"material-manager/core/storage"
	"material-manager/feature/bulk"
	"material-manager/feature/materials/store"
	"material-manager/feature/search"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages that use them.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (MinIO/S3).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// DocStore selects where courses and schools are kept.
	DocStore store.Config `mapstructure:"docstore"`
	// Lock holds configuration for per-course write locks.
	Lock lock.Config `mapstructure:"lock"`
	// Catalog holds configuration for the product catalogs.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Reconcile bounds availability runs.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Bulk holds configuration for bulk course updates.
	Bulk bulk.Config `mapstructure:"bulk"`
	// Search holds configuration for cross-list search.
	Search search.Config `mapstructure:"search"`
}

// LoadConfig reads dir/.env (when present) over the process environment and
// decodes every section. Environment keys are the dotted keys upper-cased
// with underscores, e.g. DOCSTORE_BASE_URL for docstore.base_url.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in production
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects values no component can start with.
func (c *Config) Validate() error {
	switch c.DocStore.Backend {
	case "sql", "rest":
	default:
		return fmt.Errorf("docstore.backend must be sql or rest, got %q", c.DocStore.Backend)
	}
	if c.DocStore.Backend == "rest" && c.DocStore.BaseURL == "" {
		return fmt.Errorf("docstore.base_url is required for the rest backend")
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be mysql, postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Bulk.Workers < 1 {
		return fmt.Errorf("bulk.workers must be positive")
	}
	return nil
}

// bindValues registers every mapstructure key with its `default` tag value.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
