package download

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func zipOf(t *testing.T, files map[string]string, dirs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range dirs {
		if _, err := zw.Create(d); err != nil {
			t.Fatalf("zip dir: %v", err)
		}
	}
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// listDir returns the names in dir, failing the test on error.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestRequestFileName(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Instruments(), "instruments.txt"},
		{DailyQuotes(), "daily-quotes.txt"},
		{Historic(2023), "historic-quotes-2023.txt"},
		{Sectors(), "sector-classification.xlsx"},
	}
	for _, tt := range tests {
		if got := tt.req.FileName(); got != tt.want {
			t.Errorf("%s FileName() = %q, want %q", tt.req, got, tt.want)
		}
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		req     Request
		wantErr bool
	}{
		{Instruments(), false},
		{Historic(1986), false},
		{Historic(9999), false},
		{Historic(1985), true},
		{Historic(0), true},
		{Request{Kind: Kind(42)}, true},
	}
	for _, tt := range tests {
		if err := tt.req.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s Validate() error = %v, wantErr %v", tt.req, err, tt.wantErr)
		}
	}
}

func TestResolveCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
		}
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", got, "test-agent")
		}
		w.Write([]byte("payload v" + string(rune('0'+hits.Load()))))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := NewClient(dir, map[Kind]Source{KindInstruments: {URL: srv.URL + "/instruments"}},
		WithToken("secret"), WithUserAgent("test-agent"))
	ctx := context.Background()

	path, err := c.Resolve(ctx, Instruments(), false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != filepath.Join(dir, "instruments.txt") {
		t.Errorf("path = %q", path)
	}

	again, err := c.Resolve(ctx, Instruments(), false)
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if again != path {
		t.Errorf("second path = %q, want %q", again, path)
	}
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}

	if _, err := c.Resolve(ctx, Instruments(), true); err != nil {
		t.Fatalf("Resolve forced: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("hits after force = %d, want 2", hits.Load())
	}
	body, _ := os.ReadFile(path)
	if string(body) != "payload v2" {
		t.Errorf("body = %q, want %q", body, "payload v2")
	}
	if names := listDir(t, dir); len(names) != 1 {
		t.Errorf("dir = %v, want only the cached file", names)
	}
}

func TestResolveHistoricURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := NewClient(t.TempDir(), map[Kind]Source{KindHistoric: {URL: srv.URL + "/COTAHIST_A{year}.TXT"}})
	path, err := c.Resolve(context.Background(), Historic(2019), false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gotPath != "/COTAHIST_A2019.TXT" {
		t.Errorf("request path = %q, want /COTAHIST_A2019.TXT", gotPath)
	}
	if filepath.Base(path) != "historic-quotes-2019.txt" {
		t.Errorf("path = %q", path)
	}
}

func TestResolveHTTPError(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			dir := t.TempDir()
			c := NewClient(dir, map[Kind]Source{KindDailyQuotes: {URL: srv.URL}})
			_, err := c.Resolve(context.Background(), DailyQuotes(), false)
			if !errors.Is(err, ErrNetwork) {
				t.Fatalf("error = %v, want ErrNetwork", err)
			}
			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("error = %T, want *HTTPError", err)
			}
			if httpErr.StatusCode != tt.status || httpErr.IsRetryable() != tt.retryable {
				t.Errorf("HTTPError = %+v, retryable %v, want %d/%v",
					httpErr, httpErr.IsRetryable(), tt.status, tt.retryable)
			}
			if names := listDir(t, dir); len(names) != 0 {
				t.Errorf("dir = %v, want empty", names)
			}
		})
	}
}

func TestResolveTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := NewClient(dir, map[Kind]Source{KindInstruments: {URL: srv.URL}})
	if _, err := c.Resolve(context.Background(), Instruments(), false); !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
	if _, err := os.Stat(c.Path(Instruments())); !os.IsNotExist(err) {
		t.Errorf("target exists after failed fetch: %v", err)
	}
	if names := listDir(t, dir); len(names) != 0 {
		t.Errorf("dir = %v, want empty", names)
	}
}

func TestResolveKeepsCacheOnFailedRefresh(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("good"))
	}))
	defer srv.Close()

	c := NewClient(t.TempDir(), map[Kind]Source{KindInstruments: {URL: srv.URL}})
	path, err := c.Resolve(context.Background(), Instruments(), false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	fail = true
	if _, err := c.Resolve(context.Background(), Instruments(), true); err == nil {
		t.Fatal("forced Resolve error = nil, want error")
	}
	body, _ := os.ReadFile(path)
	if string(body) != "good" {
		t.Errorf("cached body = %q, want %q", body, "good")
	}
}

func TestResolveArchive(t *testing.T) {
	tests := []struct {
		name    string
		body    func(t *testing.T) []byte
		want    string
		wantErr error
	}{
		{
			name: "single entry",
			body: func(t *testing.T) []byte {
				return zipOf(t, map[string]string{"Setorial.xlsx": "workbook"}, "folder/")
			},
			want: "workbook",
		},
		{
			name: "empty archive",
			body: func(t *testing.T) []byte {
				return zipOf(t, nil, "folder/")
			},
			wantErr: ErrMalformedArchive,
		},
		{
			name: "two entries",
			body: func(t *testing.T) []byte {
				return zipOf(t, map[string]string{"a.xlsx": "a", "b.xlsx": "b"})
			},
			wantErr: ErrMalformedArchive,
		},
		{
			name: "not a zip",
			body: func(t *testing.T) []byte {
				return []byte("plain text")
			},
			wantErr: ErrMalformedArchive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write(body)
			}))
			defer srv.Close()

			dir := t.TempDir()
			// Archive is forced for the sectors kind.
			c := NewClient(dir, map[Kind]Source{KindSectors: {URL: srv.URL}})
			path, err := c.Resolve(context.Background(), Sectors(), false)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if names := listDir(t, dir); len(names) != 0 {
					t.Errorf("dir = %v, want empty", names)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			got, _ := os.ReadFile(path)
			if string(got) != tt.want {
				t.Errorf("payload = %q, want %q", got, tt.want)
			}
			if names := listDir(t, dir); len(names) != 1 {
				t.Errorf("dir = %v, want only the payload", names)
			}
		})
	}
}

func TestResolveNoSource(t *testing.T) {
	c := NewClient(t.TempDir(), nil)
	if _, err := c.Resolve(context.Background(), Instruments(), false); err == nil {
		t.Error("Resolve() error = nil, want error")
	}
}

func TestResolveUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(t.TempDir(), map[Kind]Source{KindInstruments: {URL: url}})
	if _, err := c.Resolve(context.Background(), Instruments(), false); !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}
