package catalog

// Config holds configuration for the product catalogs.
type Config struct {
	// BaseURL is the WooCommerce REST root, e.g. https://shop.example.com/wp-json/wc/v3.
	BaseURL string `mapstructure:"base_url" default:""`
	// ConsumerKey is the WooCommerce API key.
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret is the WooCommerce API secret.
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// PerPage bounds the number of products a search returns.
	PerPage int `mapstructure:"per_page" default:"10"`
	// TimeoutSeconds bounds each WooCommerce call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// CacheTTLSeconds caches search answers per name. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// InternalPageSize is the batch size when scanning the internal catalog.
	InternalPageSize int `mapstructure:"internal_page_size" default:"200"`
}
