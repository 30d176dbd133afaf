package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/b3-refdata/internal/download"
	"github.com/rickgao/b3-refdata/internal/model"
	"github.com/rickgao/b3-refdata/internal/reader"
	"github.com/rickgao/b3-refdata/internal/reconcile"
)

// InstrumentsSummary describes one instruments load.
type InstrumentsSummary struct {
	Equities        int
	Options         int
	Classifications int // Table size after the load
	Classified      int // Equities matched to a classification
	Underlyings     int // Options whose underlying ID was resolved
	IndexSize       int
}

// LoadInstruments reads equities and options from the instruments file,
// indexes them, reloads the sector classification and classifies equities.
// Equities and options replace those of earlier loads. The ticker index is
// updated only once every step has succeeded.
func (s *Session) LoadInstruments(ctx context.Context) (InstrumentsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, start := s.begin("instruments")

	path, err := s.files.Resolve(ctx, download.Instruments(), s.force)
	if err != nil {
		return InstrumentsSummary{}, fmt.Errorf("resolve instruments: %w", err)
	}

	equities, err := read[model.Equity](ctx, s, reader.KindEquity, path, log)
	if err != nil {
		return InstrumentsSummary{}, err
	}
	index := s.index.Clone()
	index.IndexEquities(equities)

	options, err := read[model.Option](ctx, s, reader.KindOption, path, log)
	if err != nil {
		return InstrumentsSummary{}, err
	}
	index.IndexOptions(options)

	if err := s.loadSectors(ctx, log); err != nil {
		return InstrumentsSummary{}, err
	}

	sum := InstrumentsSummary{
		Equities:        len(equities),
		Options:         len(options),
		Classifications: len(s.classifications),
		Classified:      reconcile.Classify(equities, s.classifications),
		Underlyings:     reconcile.ResolveUnderlyings(options, index),
		IndexSize:       index.Len(),
	}
	s.index = index
	s.equities = equities
	s.options = options

	if s.store != nil {
		if err := s.saveInstruments(ctx, log); err != nil {
			return sum, err
		}
	}

	log.Info("loaded instruments",
		"equities", sum.Equities,
		"options", sum.Options,
		"classified", sum.Classified,
		"underlyings", sum.Underlyings,
		"index_size", sum.IndexSize,
		"duration", time.Since(start),
	)
	return sum, nil
}

// LoadSectorClassification reads the classification workbook and merges it
// into the session's table. It returns the table size.
func (s *Session) LoadSectorClassification(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, start := s.begin("sectors")
	if err := s.loadSectors(ctx, log); err != nil {
		return 0, err
	}
	if s.store != nil {
		if _, err := s.store.SaveClassifications(ctx, s.classifications); err != nil {
			return len(s.classifications), fmt.Errorf("save classifications: %w", err)
		}
	}

	log.Info("loaded sector classification",
		"classifications", len(s.classifications),
		"duration", time.Since(start),
	)
	return len(s.classifications), nil
}

// LoadQuotes reads the daily quote file. Quotes replace those of earlier
// loads. It returns the number of quotes.
func (s *Session) LoadQuotes(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, start := s.begin("quotes")

	path, err := s.files.Resolve(ctx, download.DailyQuotes(), s.force)
	if err != nil {
		return 0, fmt.Errorf("resolve daily quotes: %w", err)
	}
	quotes, err := read[model.MarketData](ctx, s, reader.KindMarketData, path, log)
	if err != nil {
		return 0, err
	}
	s.quotes = quotes

	if s.store != nil {
		if _, err := s.store.SaveMarketData(ctx, quotes); err != nil {
			return len(quotes), fmt.Errorf("save market data: %w", err)
		}
	}

	log.Info("loaded daily quotes", "quotes", len(quotes), "duration", time.Since(start))
	return len(quotes), nil
}

// LoadHistoricQuotes reads the yearly quote file of year, replacing any
// earlier load of the same year. It returns the number of quotes.
func (s *Session) LoadHistoricQuotes(ctx context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, start := s.begin("historic")
	log = log.With("year", year)

	path, err := s.files.Resolve(ctx, download.Historic(year), s.force)
	if err != nil {
		return 0, fmt.Errorf("resolve historic %d: %w", year, err)
	}
	quotes, err := read[model.HistoricMarketData](ctx, s, reader.KindHistoricMarketData, path, log)
	if err != nil {
		return 0, err
	}
	s.historic[year] = quotes

	if s.store != nil {
		if _, err := s.store.SaveHistoric(ctx, quotes); err != nil {
			return len(quotes), fmt.Errorf("save historic %d: %w", year, err)
		}
	}

	log.Info("loaded historic quotes", "quotes", len(quotes), "duration", time.Since(start))
	return len(quotes), nil
}

// Prefetch resolves distinct files concurrently and returns their paths in
// request order. Requests for the same file are resolved once.
func (s *Session) Prefetch(ctx context.Context, reqs ...download.Request) ([]string, error) {
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	paths := make([]string, len(reqs))
	first := make(map[string]int, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		if _, dup := first[req.FileName()]; dup {
			continue
		}
		first[req.FileName()] = i

		i, req := i, req
		g.Go(func() error {
			path, err := s.files.Resolve(gctx, req, s.force)
			if err != nil {
				return fmt.Errorf("prefetch %s: %w", req, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, req := range reqs {
		paths[i] = paths[first[req.FileName()]]
	}
	s.logger.Info("prefetched files", "files", len(first))
	return paths, nil
}

// begin tags a load's log lines with a fresh load ID.
func (s *Session) begin(op string) (*slog.Logger, time.Time) {
	log := s.logger.With("load_id", uuid.NewString(), "op", op)
	log.Debug("load started", "strategy", s.strategy.String(), "force", s.force)
	return log, time.Now()
}

// loadSectors resolves and reads the classification workbook and merges new
// classifications into the table, keeping first occurrences.
func (s *Session) loadSectors(ctx context.Context, log *slog.Logger) error {
	path, err := s.files.Resolve(ctx, download.Sectors(), s.force)
	if err != nil {
		return fmt.Errorf("resolve sectors: %w", err)
	}
	loaded, err := read[model.SectorClassification](ctx, s, reader.KindSectorClassification, path, log)
	if err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(s.classifications))
	for _, c := range s.classifications {
		seen[c.Hash] = struct{}{}
	}
	added := 0
	for _, c := range loaded {
		if _, ok := seen[c.Hash]; ok {
			continue
		}
		seen[c.Hash] = struct{}{}
		s.classifications = append(s.classifications, c)
		added++
	}

	log.Debug("merged classifications", "loaded", len(loaded), "added", added, "total", len(s.classifications))
	return nil
}

// saveInstruments writes classifications before equities so that equity
// rows can reference them.
func (s *Session) saveInstruments(ctx context.Context, log *slog.Logger) error {
	if _, err := s.store.SaveClassifications(ctx, s.classifications); err != nil {
		return fmt.Errorf("save classifications: %w", err)
	}
	eq, err := s.store.SaveEquities(ctx, s.equities)
	if err != nil {
		return fmt.Errorf("save equities: %w", err)
	}
	op, err := s.store.SaveOptions(ctx, s.options)
	if err != nil {
		return fmt.Errorf("save options: %w", err)
	}
	log.Debug("saved instruments",
		"equities", eq.Rows,
		"equity_conflicts", eq.Conflicts,
		"options", op.Rows,
		"option_conflicts", op.Conflicts,
	)
	return nil
}

func read[T any](ctx context.Context, s *Session, kind reader.Kind, path string, log *slog.Logger) ([]T, error) {
	r, err := reader.NewWithStrategy[T](kind, s.strategy, s.readerOpts...)
	if err != nil {
		return nil, err
	}
	records, err := r.ReadRecords(ctx, path)
	if err != nil {
		return nil, err
	}

	if st := r.Stats(); st.Skipped > 0 {
		log.Warn("skipped malformed records",
			"kind", kind.String(),
			"skipped", st.Skipped,
			"decoded", st.Decoded,
		)
	}
	return records, nil
}
