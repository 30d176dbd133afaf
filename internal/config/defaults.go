package config

import (
	"time"

	"github.com/rickgao/b3-refdata/internal/version"
)

// Default values for optional configuration fields.
const (
	DefaultBasePath    = "./data"
	DefaultDownloadDir = "downloads"
	DefaultTimeout     = 2 * time.Minute
	DefaultSectorsURL  = "http://www.bmfbovespa.com.br/lumis/portal/file/fileDownload.jsp?fileId=8AA8D0975A2D7918015A3C81693D4CA4"
	DefaultStrategy    = "current"
	DefaultEncoding    = "latin1"
	DefaultDBPort      = 5432
	DefaultDBSSLMode   = "prefer"
	DefaultMaxConns    = 10
	DefaultMinConns    = 2
	DefaultBatchSize   = 500
	DefaultLogLevel    = "info"
)

func (c *Config) applyDefaults() {
	// Path defaults
	if c.Paths.BasePath == "" {
		c.Paths.BasePath = DefaultBasePath
	}
	if c.Paths.DownloadDir == "" {
		c.Paths.DownloadDir = DefaultDownloadDir
	}

	// Source defaults
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = version.UserAgent()
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = DefaultTimeout
	}
	if c.Source.Sectors.URL == "" {
		c.Source.Sectors.URL = DefaultSectorsURL
	}
	c.Source.Sectors.Archive = true

	// Reader defaults
	if c.Reader.Strategy == "" {
		c.Reader.Strategy = DefaultStrategy
	}
	if c.Reader.Encoding == "" {
		c.Reader.Encoding = DefaultEncoding
	}

	// Database defaults
	applyDBDefaults(&c.Database.DBConfig)

	// Writer defaults
	if c.Writer.BatchSize == 0 {
		c.Writer.BatchSize = DefaultBatchSize
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
