package store

// Config holds configuration for the Store.
type Config struct {
	// Table is the name of the single DynamoDB table holding all entities.
	// Default: "datavibes-dev-table"
	Table string
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{Table: "datavibes-dev-table"}
}

// validate ensures config values are usable.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "datavibes-dev-table"
	}
}
