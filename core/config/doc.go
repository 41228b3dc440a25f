// Package config provides configuration management for the Material Manager.
//
// Values come from environment variables, optionally loaded from a .env file,
// with defaults taken from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections owned by the packages that use them:
//   - Server: HTTP port, API key and body limit
//   - Database: SQL driver and connection details
//   - DocStore: SQL or REST document store for courses
//   - Storage: S3/MinIO credentials and bucket
//   - Lock: Redis address for per-course locks
//   - Catalog: WooCommerce credentials and lookup cache
//   - Reconcile: per-lookup timeout and run budget
//   - Bulk, Search: worker count and scan ceiling
//   - Log: logging level, format and service name
//
// Nested keys map to upper-case env vars: `catalog.base_url` is CATALOG_BASE_URL.
//
// # Usage
//
//	cfg, err := config.LoadConfig(configDir) // Validate runs before returning
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
