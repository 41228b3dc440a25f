package search

// Config holds configuration for cross-list search.
type Config struct {
	// PageSizeCeiling caps how many courses one search reads.
	PageSizeCeiling int `mapstructure:"page_size_ceiling" default:"1000"`
}
