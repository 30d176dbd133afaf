package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	fw "github.com/rickgao/b3-refdata/internal/fixedwidth"
	"github.com/rickgao/b3-refdata/internal/model"
	"github.com/rickgao/b3-refdata/internal/sectors"
)

var (
	// ErrUnsupportedRecordType is returned for a kind outside the registry or a
	// record type the kind does not produce.
	ErrUnsupportedRecordType = errors.New("unsupported record type")

	// ErrStrategyNotSet is returned by ReadRecords before SetStrategy.
	ErrStrategyNotSet = errors.New("read strategy not set")
)

// Stats is re-exported from the fixed-width codec. Spreadsheet reads fill
// Lines with rows seen across sheets, Decoded with records produced and
// Skipped with company rows dropped for missing hierarchy.
type Stats = fw.Stats

type settings struct {
	logger   *slog.Logger
	encoding encoding.Encoding
}

// Option configures a Reader.
type Option func(*settings)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithEncoding sets the text encoding of fixed-width files. Nil reads text
// fields as raw UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(s *settings) {
		s.encoding = enc
	}
}

// codec produces records of one type from a file laid out per strategy.
type codec[T any] interface {
	read(ctx context.Context, path string, strategy Strategy) ([]T, Stats, error)
}

// lineCodec adapts a fixed-width decode function to the layout table.
type lineCodec[T any] struct {
	kind   Kind
	decode func(*fw.Schema) fw.DecodeFunc[T]
	opts   fw.Options
}

func (c *lineCodec[T]) read(ctx context.Context, path string, strategy Strategy) ([]T, Stats, error) {
	schema, ok := Layout(c.kind, strategy)
	if !ok {
		return nil, Stats{}, fmt.Errorf("%w: no %s layout for %s", ErrUnsupportedRecordType, strategy, c.kind)
	}
	return fw.NewCodec(c.decode(schema), c.opts).ReadFile(ctx, path, schema)
}

// workbookCodec reads the classification workbook. It has one layout, so the
// strategy only has to be set.
type workbookCodec struct {
	logger *slog.Logger
}

func (c *workbookCodec) read(ctx context.Context, path string, _ Strategy) ([]model.SectorClassification, Stats, error) {
	records, sum, err := sectors.Build(ctx, path, c.logger)
	if err != nil {
		return nil, Stats{}, err
	}
	return records, Stats{
		Lines:   sum.Rows,
		Matched: len(records) + sum.Dropped,
		Decoded: len(records),
		Skipped: sum.Dropped,
	}, nil
}

// codecFor is the closed registry. The returned value is one of codec[T] for
// the T the kind produces.
func codecFor(kind Kind, s settings) (any, error) {
	opts := fw.Options{Encoding: s.encoding, Logger: s.logger}

	switch kind {
	case KindEquity:
		return &lineCodec[model.Equity]{kind: kind, decode: decodeEquity, opts: opts}, nil
	case KindOption:
		return &lineCodec[model.Option]{kind: kind, decode: decodeOption, opts: opts}, nil
	case KindMarketData:
		return &lineCodec[model.MarketData]{kind: kind, decode: decodeMarketData, opts: opts}, nil
	case KindHistoricMarketData:
		return &lineCodec[model.HistoricMarketData]{kind: kind, decode: decodeHistoric, opts: opts}, nil
	case KindSectorClassification:
		return &workbookCodec{logger: s.logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecordType, kind)
	}
}

// Reader reads records of type T from files of one kind.
type Reader[T any] struct {
	kind   Kind
	codec  codec[T]
	logger *slog.Logger

	mu       sync.Mutex
	strategy Strategy
	stats    Stats
}

// New creates a reader for kind. T must be the record type the kind produces:
//
//	r, err := reader.New[model.Equity](reader.KindEquity)
//
// Text fields are read as Latin-1 unless WithEncoding says otherwise.
func New[T any](kind Kind, opts ...Option) (*Reader[T], error) {
	s := settings{
		logger:   slog.Default(),
		encoding: charmap.ISO8859_1,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	c, err := codecFor(kind, s)
	if err != nil {
		return nil, err
	}
	typed, ok := c.(codec[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s does not produce %T", ErrUnsupportedRecordType, kind, zero)
	}

	return &Reader[T]{kind: kind, codec: typed, logger: s.logger}, nil
}

// NewWithStrategy is New followed by SetStrategy.
func NewWithStrategy[T any](kind Kind, strategy Strategy, opts ...Option) (*Reader[T], error) {
	r, err := New[T](kind, opts...)
	if err != nil {
		return nil, err
	}
	r.SetStrategy(strategy)
	return r, nil
}

// Kind returns the kind the reader was created for.
func (r *Reader[T]) Kind() Kind {
	return r.kind
}

// SetStrategy selects the layout used by later reads.
func (r *Reader[T]) SetStrategy(s Strategy) {
	r.mu.Lock()
	r.strategy = s
	r.mu.Unlock()
}

// Strategy returns the selected layout strategy.
func (r *Reader[T]) Strategy() Strategy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.strategy
}

// Stats returns the counters of the last completed read.
func (r *Reader[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// ReadRecords returns every record of the reader's kind in path, in file
// order. Lines that fail to decode are skipped and counted in Stats.
func (r *Reader[T]) ReadRecords(ctx context.Context, path string) ([]T, error) {
	strategy := r.Strategy()
	if strategy == StrategyUnset {
		return nil, fmt.Errorf("read %s: %w", r.kind, ErrStrategyNotSet)
	}

	records, stats, err := r.codec.read(ctx, path, strategy)
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", r.kind, path, err)
	}

	r.mu.Lock()
	r.stats = stats
	r.mu.Unlock()

	r.logger.Debug("read records",
		"kind", r.kind.String(),
		"strategy", strategy.String(),
		"path", path,
		"lines", stats.Lines,
		"decoded", stats.Decoded,
		"skipped", stats.Skipped,
	)
	return records, nil
}
