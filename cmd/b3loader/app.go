package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/rickgao/b3-refdata/internal/config"
	"github.com/rickgao/b3-refdata/internal/database"
	"github.com/rickgao/b3-refdata/internal/download"
	"github.com/rickgao/b3-refdata/internal/reader"
	"github.com/rickgao/b3-refdata/internal/session"
	"github.com/rickgao/b3-refdata/internal/store"
)

// app is a session wired from config, plus the pool to close after the run.
type app struct {
	session *session.Session
	store   *store.Store
	close   func()
}

func sources(c *config.Config) map[download.Kind]download.Source {
	src := func(f config.FileSource) download.Source {
		return download.Source{URL: f.URL, Archive: f.Archive}
	}
	return map[download.Kind]download.Source{
		download.KindInstruments: src(c.Source.Instruments),
		download.KindDailyQuotes: src(c.Source.DailyQuotes),
		download.KindHistoric:    src(c.Source.Historic),
		download.KindSectors:     src(c.Source.Sectors),
	}
}

// textEncoding maps the configured encoding name. utf8 reads text as is.
func textEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "latin1", "":
		return charmap.ISO8859_1, nil
	case "utf8":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

func newDownloader(c *config.Config, logger *slog.Logger) *download.Client {
	return download.NewClient(c.Paths.DownloadPath(), sources(c),
		download.WithLogger(logger),
		download.WithTimeout(c.Source.Timeout),
		download.WithToken(c.Source.Token),
		download.WithUserAgent(c.Source.UserAgent),
	)
}

func newApp(ctx context.Context, c *config.Config, logger *slog.Logger) (*app, error) {
	strat, err := reader.ParseStrategy(c.Reader.Strategy)
	if err != nil {
		return nil, err
	}
	enc, err := textEncoding(c.Reader.Encoding)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithStrategy(strat),
		session.WithEncoding(enc),
		session.WithForceRefresh(c.ForceRefresh),
	}
	a := &app{close: func() {}}

	if c.Database.Enabled {
		logger.Info("connecting to database",
			"host", c.Database.Host,
			"port", c.Database.Port,
			"database", c.Database.Name,
		)
		pool, err := database.Connect(ctx, c.Database.DBConfig)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.close = pool.Close

		a.store = store.New(pool, c.Writer.BatchSize, logger)
		if err := a.store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		opts = append(opts, session.WithStore(a.store))
	}

	a.session = session.New(newDownloader(c, logger), opts...)
	return a, nil
}

// run wires an app, calls fn and logs store metrics when persistence is on.
func run(ctx context.Context, fn func(ctx context.Context, s *session.Session) error) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	if err := fn(ctx, a.session); err != nil {
		return err
	}

	if a.store != nil {
		m := a.store.Stats()
		logger.Info("database writes",
			"inserts", m.Inserts,
			"conflicts", m.Conflicts,
			"batches", m.Batches,
			"errors", m.Errors,
		)
	}
	return nil
}
