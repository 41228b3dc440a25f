package lock

// Config holds configuration for per-entity write locks.
type Config struct {
	// RedisAddr is the Redis address. Empty uses in-process locks.
	RedisAddr string `mapstructure:"redis_addr" default:""`
	// RedisPassword is the Redis password.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the Redis logical database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// TTLSeconds is how long a lock is held before Redis expires it.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"120"`
	// RetryMillis is the wait between acquisition attempts.
	RetryMillis int `mapstructure:"retry_millis" default:"50"`
}
