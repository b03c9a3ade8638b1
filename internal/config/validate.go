package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	// env-required accepts a present-but-empty variable; reject that here.
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Assistant.validate(); err != nil {
		return fmt.Errorf("assistant: %w", err)
	}

	if c.Schedule.DefaultTargetMins < 0 {
		return fmt.Errorf("schedule.default_target_mins must be >= 0 (got %d)", c.Schedule.DefaultTargetMins)
	}

	return nil
}

func (a *AssistantConfig) validate() error {
	if a.StreamBaseURL == "" {
		return fmt.Errorf("stream_base_url must not be empty")
	}
	if a.BatchMaxTokens <= 0 {
		return fmt.Errorf("batch_max_tokens must be > 0 (got %d)", a.BatchMaxTokens)
	}

	limits := map[string]int{
		"max_chars_format":    a.MaxCharsFormat,
		"max_chars_breakdown": a.MaxCharsBreakdown,
		"max_chars_shotlist":  a.MaxCharsShotlist,
		"max_chars_callsheet": a.MaxCharsCallsheet,
	}
	for name, v := range limits {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", name, v)
		}
	}

	return nil
}
