package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535] (got %d)", c.Server.Port)
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if err := c.App.validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}

	return nil
}

func (a *AppConfig) validate() error {
	if a.LeaderboardSize <= 0 {
		return fmt.Errorf("leaderboard_size must be > 0 (got %d)", a.LeaderboardSize)
	}
	if a.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", a.DefaultPageSize)
	}
	if a.MaxPageSize < a.DefaultPageSize {
		return fmt.Errorf("max_page_size (%d) must be >= default_page_size (%d)",
			a.MaxPageSize, a.DefaultPageSize)
	}
	if a.RateLimitPerMinute <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be > 0 (got %d)", a.RateLimitPerMinute)
	}
	return nil
}
