package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rickgao/b3-refdata/internal/download"
)

const minimalYAML = `
source:
  instruments:
    url: https://example.com/instruments.txt
  daily_quotes:
    url: https://example.com/daily.txt
  historic:
    url: https://example.com/COTAHIST_A{year}.TXT
`

func TestLoad(t *testing.T) {
	yaml := `
paths:
  base_path: /var/lib/b3
  download_dir: cache
source:
  timeout: 30s
  instruments:
    url: https://example.com/instruments.txt
  historic:
    url: https://example.com/COTAHIST_A{year}.ZIP
    archive: true
reader:
  strategy: legacy
database:
  enabled: true
  host: localhost
  name: refdata
  user: loader
  password: secret
force_refresh: true
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Paths.DownloadPath() != "/var/lib/b3/cache" {
		t.Errorf("DownloadPath() = %q, want %q", cfg.Paths.DownloadPath(), "/var/lib/b3/cache")
	}
	if cfg.Source.Timeout != 30*time.Second {
		t.Errorf("Source.Timeout = %v, want %v", cfg.Source.Timeout, 30*time.Second)
	}
	if !cfg.Source.Historic.Archive {
		t.Error("Source.Historic.Archive = false, want true")
	}
	if cfg.Reader.Strategy != "legacy" {
		t.Errorf("Reader.Strategy = %q, want %q", cfg.Reader.Strategy, "legacy")
	}
	if !cfg.Database.Enabled || cfg.Database.Host != "localhost" {
		t.Errorf("Database = %+v, want enabled on localhost", cfg.Database)
	}
	if !cfg.ForceRefresh {
		t.Error("ForceRefresh = false, want true")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_B3_TOKEN", "tok123")
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := minimalYAML + `
  token: ${TEST_B3_TOKEN}
database:
  password: ${TEST_DB_PASSWORD}
`
	cfg, err := Load(writeTempFile(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source.Token != "tok123" {
		t.Errorf("Source.Token = %q, want %q", cfg.Source.Token, "tok123")
	}
	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(writeTempFile(t, minimalYAML))
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Paths.DownloadPath() != filepath.Join(DefaultBasePath, DefaultDownloadDir) {
		t.Errorf("DownloadPath() = %q", cfg.Paths.DownloadPath())
	}
	if cfg.Source.Timeout != DefaultTimeout {
		t.Errorf("Source.Timeout = %v, want %v", cfg.Source.Timeout, DefaultTimeout)
	}
	if cfg.Source.Sectors.URL != DefaultSectorsURL || !cfg.Source.Sectors.Archive {
		t.Errorf("Source.Sectors = %+v, want default archive source", cfg.Source.Sectors)
	}
	if cfg.Source.UserAgent == "" {
		t.Error("Source.UserAgent is empty")
	}
	if cfg.Reader.Strategy != DefaultStrategy || cfg.Reader.Encoding != DefaultEncoding {
		t.Errorf("Reader = %+v", cfg.Reader)
	}
	if cfg.Database.Port != DefaultDBPort || cfg.Database.MaxConns != DefaultMaxConns {
		t.Errorf("Database = %+v", cfg.Database.DBConfig)
	}
	if cfg.Writer.BatchSize != DefaultBatchSize {
		t.Errorf("Writer.BatchSize = %d, want %d", cfg.Writer.BatchSize, DefaultBatchSize)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("Log.SlogLevel() = %v, want info", cfg.Log.SlogLevel())
	}
}

func TestLoadAndValidate(t *testing.T) {
	if _, err := LoadAndValidate(writeTempFile(t, minimalYAML)); err != nil {
		t.Errorf("LoadAndValidate() unexpected error: %v", err)
	}
	if _, err := LoadAndValidate(writeTempFile(t, "reader: [not, a, map]")); err == nil {
		t.Error("LoadAndValidate() expected parse error, got nil")
	}
	if _, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadAndValidate() expected read error, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Config{
			Source: SourceConfig{
				Instruments: FileSource{URL: "https://example.com/i"},
				DailyQuotes: FileSource{URL: "https://example.com/d"},
				Historic:    FileSource{URL: "https://example.com/h{year}"},
			},
		}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "missing instruments url",
			mutate:  func(c *Config) { c.Source.Instruments.URL = "" },
			wantErr: "source.instruments.url is required",
		},
		{
			name:    "historic url without year",
			mutate:  func(c *Config) { c.Source.Historic.URL = "https://example.com/h.txt" },
			wantErr: "source.historic.url must contain {year}",
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Reader.Strategy = "v3" },
			wantErr: `reader.strategy must be current or legacy, got "v3"`,
		},
		{
			name:    "unknown encoding",
			mutate:  func(c *Config) { c.Reader.Encoding = "ebcdic" },
			wantErr: `reader.encoding must be latin1 or utf8, got "ebcdic"`,
		},
		{
			name:    "database fields ignored when disabled",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Enabled = true },
			wantErr: "database.host is required",
		},
		{
			name: "missing database password",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.Host, c.Database.Name, c.Database.User = "localhost", "db", "user"
			},
			wantErr: "database.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.DBConfig = DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 5, MinConns: 10}
			},
			wantErr: "database.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Writer.BatchSize = 0 },
			wantErr: "writer.batch_size must be >= 1",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: `log.level must be debug, info, warn or error, got "trace"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WARN", slog.LevelWarn, true},
		{"", slog.LevelInfo, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestValidateHistoricPlaceholder(t *testing.T) {
	cfg := Default()
	cfg.Source.Instruments.URL = "https://example.com/i"
	cfg.Source.DailyQuotes.URL = "https://example.com/d"

	cfg.Source.Historic.URL = "https://example.com/COTAHIST_A" + download.YearPlaceholder + ".ZIP"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	cfg.Source.Historic.URL = "https://example.com/COTAHIST_A{YEAR}.ZIP"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want error for a URL the downloader cannot expand")
	}
}
