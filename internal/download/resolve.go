package download

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Resolve returns the local path of req, fetching it when it is not cached
// or when force is set.
func (c *Client) Resolve(ctx context.Context, req Request, force bool) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	path := c.Path(req)

	if !force {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			c.logger.Debug("cache hit", "file", req.String(), "path", path)
			return path, nil
		}
	}

	src, ok := c.sources[req.Kind]
	if !ok || src.URL == "" {
		return "", fmt.Errorf("no source configured for %s", req.Kind)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrFileSystem, c.dir, err)
	}

	start := time.Now()
	staged, err := c.fetch(ctx, src.url(req), req)
	if err != nil {
		return "", err
	}

	if src.Archive {
		payload, err := c.extract(staged, req)
		os.Remove(staged)
		if err != nil {
			return "", err
		}
		staged = payload
	}

	if err := os.Rename(staged, path); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("%w: rename into %s: %v", ErrFileSystem, path, err)
	}

	c.logger.Info("downloaded file",
		"file", req.String(),
		"path", path,
		"force", force,
		"duration", time.Since(start),
	)
	return path, nil
}

// stage creates an empty temporary file next to the cache files, so the
// final rename never crosses file systems.
func (c *Client) stage(req Request) (*os.File, error) {
	f, err := os.CreateTemp(c.dir, "."+req.FileName()+".*.part")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %v", ErrFileSystem, err)
	}
	return f, nil
}

// fetch GETs url into a staged file and returns its path. The staged file is
// removed on every error.
func (c *Client) fetch(ctx context.Context, url string, req Request) (path string, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
	}

	f, err := c.stage(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := &trackedWriter{w: f}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		if w.err != nil {
			return "", fmt.Errorf("%w: write %s: %v", ErrFileSystem, f.Name(), err)
		}
		return "", fmt.Errorf("%w: read body of %s after %d bytes: %v", ErrNetwork, url, n, err)
	}
	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return "", fmt.Errorf("%w: GET %s: got %d of %d bytes", ErrNetwork, url, n, resp.ContentLength)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ErrFileSystem, f.Name(), err)
	}

	c.logger.Debug("fetched", "url", url, "bytes", n)
	return f.Name(), nil
}

// extract copies the single file inside the zip archive at path into a new
// staged file and returns its path.
func (c *Client) extract(path string, req Request) (out string, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	defer zr.Close()

	var entries []*zip.File
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/") {
			continue
		}
		entries = append(entries, zf)
	}
	if len(entries) != 1 {
		return "", fmt.Errorf("%w: want 1 file, archive has %d", ErrMalformedArchive, len(entries))
	}
	entry := entries[0]

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrMalformedArchive, entry.Name, err)
	}
	defer rc.Close()

	f, err := c.stage(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := &trackedWriter{w: f}
	if _, err = io.Copy(w, rc); err != nil {
		if w.err != nil {
			return "", fmt.Errorf("%w: write %s: %v", ErrFileSystem, f.Name(), err)
		}
		return "", fmt.Errorf("%w: inflate %s: %v", ErrMalformedArchive, entry.Name, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ErrFileSystem, f.Name(), err)
	}

	c.logger.Debug("extracted archive entry", "entry", entry.Name, "bytes", entry.UncompressedSize64)
	return f.Name(), nil
}

// trackedWriter remembers write errors so copy failures can be attributed to
// the local side or the remote side.
type trackedWriter struct {
	w   io.Writer
	err error
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
