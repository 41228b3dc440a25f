package store

// Config selects and configures the document store backend.
type Config struct {
	// Backend is "sql" (gorm tables) or "rest" (headless CMS over HTTP).
	Backend string `mapstructure:"backend" default:"sql"`
	// BaseURL is the REST API root, e.g. https://cms.example.com/api.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the bearer token for the REST API.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds each REST call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
}
