package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.App.Environment) {
	case EnvProduction, EnvDevelopment, "test", "staging":
	default:
		return fmt.Errorf("app.environment must be one of production, staging, development, test (got %q)", c.App.Environment)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.RateLimit.ReportsPerMinute < 0 || c.RateLimit.AdminPerMinute < 0 {
		return fmt.Errorf("rate_limit: per-minute limits must be >= 0")
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	if s.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be > 0 (got %d)", s.MaxPageSize)
	}
	if s.DefaultPageSize <= 0 || s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf("default_page_size must be in 1..%d (got %d)", s.MaxPageSize, s.DefaultPageSize)
	}
	if s.DefaultFuzzy < 0 || s.DefaultFuzzy > 1 {
		return fmt.Errorf("default_fuzzy must be in [0,1] (got %v)", s.DefaultFuzzy)
	}
	if s.AutocompleteMinLen < 1 {
		return fmt.Errorf("autocomplete_min_len must be >= 1 (got %d)", s.AutocompleteMinLen)
	}
	if s.AutocompleteLimit < 1 || s.AutocompleteLimit > s.AutocompleteMaxSize {
		return fmt.Errorf("autocomplete_limit must be in 1..%d (got %d)", s.AutocompleteMaxSize, s.AutocompleteLimit)
	}
	return nil
}
