package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation of the server configuration.
// LoadServer calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Review.validate(); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	if err := c.Points.validate(); err != nil {
		return fmt.Errorf("points: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSec <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit: requests_per_sec and burst must be > 0 when enabled")
	}

	return nil
}

// ValidateClient performs validation of the rater client configuration.
// LoadClient calls it automatically.
func (c *Config) ValidateClient() error {
	u, err := url.Parse(c.Client.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("client.api_base_url must be an absolute http(s) URL (got %q)", c.Client.APIBaseURL)
	}
	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("client.request_timeout must be > 0 (got %s)", c.Client.RequestTimeout)
	}
	if c.Client.DataDir == "" {
		return fmt.Errorf("client.data_dir is required")
	}
	return nil
}

func (r *ReviewConfig) validate() error {
	if r.DailyCap <= 0 {
		return fmt.Errorf("daily_cap must be > 0 (got %d)", r.DailyCap)
	}
	if r.MaxBatchItems <= 0 {
		return fmt.Errorf("max_batch_items must be > 0 (got %d)", r.MaxBatchItems)
	}
	return nil
}

func (p *PointsConfig) validate() error {
	if p.DefaultPerRating < 0 {
		return fmt.Errorf("default_per_rating must be >= 0 (got %d)", p.DefaultPerRating)
	}
	if p.MaxSpend <= 0 {
		return fmt.Errorf("max_spend must be > 0 (got %d)", p.MaxSpend)
	}
	return nil
}
