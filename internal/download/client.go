package download

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

// Client resolves Requests against a cache directory.
type Client struct {
	dir        string
	sources    map[Kind]Source
	httpClient *http.Client
	logger     *slog.Logger
	token      string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client caching files in dir. The sectors source is
// always treated as an archive.
func NewClient(dir string, sources map[Kind]Source, opts ...ClientOption) *Client {
	c := &Client{
		dir:     dir,
		sources: make(map[Kind]Source, len(sources)),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger:    slog.Default(),
		userAgent: "b3-refdata",
	}
	for k, s := range sources {
		if k == KindSectors {
			s.Archive = true
		}
		c.sources[k] = s
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sends token as a bearer credential.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Dir returns the cache directory.
func (c *Client) Dir() string {
	return c.dir
}

// Path returns where req is cached, whether or not it exists yet.
func (c *Client) Path(req Request) string {
	return filepath.Join(c.dir, req.FileName())
}
