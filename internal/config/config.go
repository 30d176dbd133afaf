package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration of the loader.
type Config struct {
	Paths        PathsConfig    `yaml:"paths"`
	Source       SourceConfig   `yaml:"source"`
	Reader       ReaderConfig   `yaml:"reader"`
	Database     DatabaseConfig `yaml:"database"`
	Writer       WriterConfig   `yaml:"writer"`
	ForceRefresh bool           `yaml:"force_refresh"`
	Log          LogConfig      `yaml:"log"`
}

// PathsConfig locates the local file cache.
type PathsConfig struct {
	BasePath    string `yaml:"base_path"`
	DownloadDir string `yaml:"download_dir"` // Relative to base_path unless absolute
}

// DownloadPath returns the cache directory.
func (p PathsConfig) DownloadPath() string {
	if filepath.IsAbs(p.DownloadDir) {
		return p.DownloadDir
	}
	return filepath.Join(p.BasePath, p.DownloadDir)
}

// SourceConfig holds where and how files are fetched.
type SourceConfig struct {
	Token       string        `yaml:"token"` // Optional bearer token
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	Instruments FileSource    `yaml:"instruments"`
	DailyQuotes FileSource    `yaml:"daily_quotes"`
	Historic    FileSource    `yaml:"historic"` // URL must contain {year}
	Sectors     FileSource    `yaml:"sectors"`
}

// FileSource is one published file.
type FileSource struct {
	URL     string `yaml:"url"`
	Archive bool   `yaml:"archive"`
}

// ReaderConfig selects the file layouts.
type ReaderConfig struct {
	Strategy string `yaml:"strategy"` // current | legacy
	Encoding string `yaml:"encoding"` // latin1 | utf8
}

// DatabaseConfig holds the optional PostgreSQL target.
type DatabaseConfig struct {
	Enabled  bool `yaml:"enabled"`
	DBConfig `yaml:",inline"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// WriterConfig holds batch upsert settings.
type WriterConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// SlogLevel maps Level to a slog level. Unknown values map to info.
func (l LogConfig) SlogLevel() slog.Level {
	level, _ := ParseLevel(l.Level)
	return level
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
