package reconcile

import "time"

// Config holds the time limits of availability runs.
type Config struct {
	// ItemTimeoutMillis bounds each catalog call.
	ItemTimeoutMillis int `mapstructure:"item_timeout_ms" default:"5000"`
	// BudgetSeconds bounds a whole run; unprocessed items are left untouched.
	BudgetSeconds int `mapstructure:"budget_seconds" default:"60"`
}

// Spec builds a Spec over the given sources.
func (c Config) Spec(sources ...Source) Spec {
	return Spec{
		Sources:     sources,
		ItemTimeout: time.Duration(c.ItemTimeoutMillis) * time.Millisecond,
		Budget:      time.Duration(c.BudgetSeconds) * time.Second,
	}
}
