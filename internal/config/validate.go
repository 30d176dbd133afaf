package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rickgao/b3-refdata/internal/download"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Paths.BasePath == "" {
		return errors.New("paths.base_path is required")
	}

	if c.Source.Instruments.URL == "" {
		return errors.New("source.instruments.url is required")
	}
	if c.Source.DailyQuotes.URL == "" {
		return errors.New("source.daily_quotes.url is required")
	}
	if c.Source.Historic.URL == "" {
		return errors.New("source.historic.url is required")
	}
	if !strings.Contains(c.Source.Historic.URL, download.YearPlaceholder) {
		return fmt.Errorf("source.historic.url must contain %s", download.YearPlaceholder)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must be >= 0, got %s", c.Source.Timeout)
	}

	switch strings.ToLower(c.Reader.Strategy) {
	case "current", "legacy":
	default:
		return fmt.Errorf("reader.strategy must be current or legacy, got %q", c.Reader.Strategy)
	}
	switch strings.ToLower(c.Reader.Encoding) {
	case "latin1", "utf8":
	default:
		return fmt.Errorf("reader.encoding must be latin1 or utf8, got %q", c.Reader.Encoding)
	}

	if c.Database.Enabled {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	if c.Writer.BatchSize < 1 {
		return errors.New("writer.batch_size must be >= 1")
	}

	if _, ok := ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
