package bulk

// Config holds configuration for bulk course updates.
type Config struct {
	// Workers bounds how many courses are updated at once.
	Workers int `mapstructure:"workers" default:"4"`
	// MaxIDs caps the number of ids accepted in one request.
	MaxIDs int `mapstructure:"max_ids" default:"500"`
}
