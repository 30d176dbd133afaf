package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/text/encoding"

	"github.com/rickgao/b3-refdata/internal/download"
	"github.com/rickgao/b3-refdata/internal/model"
	"github.com/rickgao/b3-refdata/internal/reader"
	"github.com/rickgao/b3-refdata/internal/reconcile"
	"github.com/rickgao/b3-refdata/internal/store"
)

// Resolver maps a file request to a local path. *download.Client implements it.
type Resolver interface {
	Resolve(ctx context.Context, req download.Request, force bool) (string, error)
}

// Store persists loaded records. *store.Store implements it.
type Store interface {
	SaveClassifications(ctx context.Context, cs []model.SectorClassification) (store.Result, error)
	SaveEquities(ctx context.Context, equities []model.Equity) (store.Result, error)
	SaveOptions(ctx context.Context, options []model.Option) (store.Result, error)
	SaveMarketData(ctx context.Context, quotes []model.MarketData) (store.Result, error)
	SaveHistoric(ctx context.Context, quotes []model.HistoricMarketData) (store.Result, error)
}

// Session holds the state of one loader run.
type Session struct {
	files      Resolver
	store      Store
	logger     *slog.Logger
	strategy   reader.Strategy
	readerOpts []reader.Option
	force      bool

	mu              sync.RWMutex
	equities        []model.Equity
	options         []model.Option
	quotes          []model.MarketData
	historic        map[int][]model.HistoricMarketData
	classifications []model.SectorClassification
	index           *reconcile.TickerIndex
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithStore persists every load through st.
func WithStore(st Store) Option {
	return func(s *Session) {
		s.store = st
	}
}

// WithStrategy selects the file layouts. Without it every load fails with
// reader.ErrStrategyNotSet.
func WithStrategy(strategy reader.Strategy) Option {
	return func(s *Session) {
		s.strategy = strategy
	}
}

// WithEncoding sets the text encoding of fixed-width files. Nil reads text
// as UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *Session) {
		s.readerOpts = append(s.readerOpts, reader.WithEncoding(enc))
	}
}

// WithForceRefresh refetches files even when they are cached.
func WithForceRefresh(force bool) Option {
	return func(s *Session) {
		s.force = force
	}
}

// New creates a session resolving files through files.
func New(files Resolver, opts ...Option) *Session {
	s := &Session{
		files:    files,
		logger:   slog.Default(),
		historic: make(map[int][]model.HistoricMarketData),
		index:    reconcile.NewTickerIndex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.readerOpts = append(s.readerOpts, reader.WithLogger(s.logger))
	return s
}

// Equities returns the equities of the last instruments load.
func (s *Session) Equities() []model.Equity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Equity(nil), s.equities...)
}

// Options returns the options of the last instruments load.
func (s *Session) Options() []model.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Option(nil), s.options...)
}

// MarketData returns the quotes of the last daily quote load.
func (s *Session) MarketData() []model.MarketData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.MarketData(nil), s.quotes...)
}

// Classifications returns every classification loaded so far.
func (s *Session) Classifications() []model.SectorClassification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SectorClassification(nil), s.classifications...)
}

// HistoricYears returns the loaded historic years in ascending order.
func (s *Session) HistoricYears() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historicYears()
}

func (s *Session) historicYears() []int {
	years := make([]int, 0, len(s.historic))
	for y := range s.historic {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// HistoricMarketData returns all loaded historic quotes, years ascending and
// file order within a year.
func (s *Session) HistoricMarketData() []model.HistoricMarketData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, rows := range s.historic {
		n += len(rows)
	}
	out := make([]model.HistoricMarketData, 0, n)
	for _, y := range s.historicYears() {
		out = append(out, s.historic[y]...)
	}
	return out
}

// HistoricMarketDataFor returns the historic quotes of one year.
func (s *Session) HistoricMarketDataFor(year int) ([]model.HistoricMarketData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.historic[year]
	return append([]model.HistoricMarketData(nil), rows...), ok
}

// TickerIndex returns a snapshot of the ticker to ID index.
func (s *Session) TickerIndex() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Snapshot()
}

// LookupTicker returns the ID indexed for ticker.
func (s *Session) LookupTicker(ticker string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Lookup(ticker)
}
