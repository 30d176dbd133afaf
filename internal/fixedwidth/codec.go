package fixedwidth

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// maxLineSize bounds a single line. B3 layouts stay well under 1KB; longer
// lines are skipped.
const maxLineSize = 64 * 1024

// ctxCheckEvery is how many lines are scanned between context checks.
const ctxCheckEvery = 4096

// DecodeFunc converts one matching row into a record.
type DecodeFunc[T any] func(r *Row) (T, error)

// Stats counts what happened during one read.
type Stats struct {
	Lines   int // Lines scanned
	Matched int // Lines carrying the schema's discriminator
	Decoded int // Records produced
	Skipped int // Matching lines dropped by a decoding error or over maxLineSize
}

// Options configures a Codec.
type Options struct {
	// Encoding of text fields. Nil reads bytes as they are.
	Encoding encoding.Encoding
	Logger   *slog.Logger
}

// DefaultOptions returns Latin-1 decoding with the default logger.
func DefaultOptions() Options {
	return Options{
		Encoding: charmap.ISO8859_1,
		Logger:   slog.Default(),
	}
}

// Codec extracts records of one type from fixed-width files.
type Codec[T any] struct {
	decode DecodeFunc[T]
	opts   Options
}

// NewCodec creates a codec around a decode function.
func NewCodec[T any](decode DecodeFunc[T], opts Options) *Codec[T] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Codec[T]{decode: decode, opts: opts}
}

// ReadFile reads every line of path matching schema, in file order.
func (c *Codec[T]) ReadFile(ctx context.Context, path string, schema *Schema) ([]T, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return c.Read(ctx, f, schema)
}

// Read reads every line of r matching schema, in input order. Lines failing to
// decode are logged and skipped; only I/O and context errors are returned.
func (c *Codec[T]) Read(ctx context.Context, r io.Reader, schema *Schema) ([]T, Stats, error) {
	var (
		stats   Stats
		records []T
		dec     *encoding.Decoder
	)
	if c.opts.Encoding != nil {
		dec = c.opts.Encoding.NewDecoder()
	}

	br := bufio.NewReader(r)
	var buf []byte

	for {
		line, oversized, err := readLine(br, buf[:0])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read line %d: %w", stats.Lines+1, err)
		}
		buf = line

		stats.Lines++
		if stats.Lines%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		if !schema.Matches(line) {
			continue
		}
		stats.Matched++

		if oversized {
			stats.Skipped++
			c.opts.Logger.Debug("skipping line",
				"schema", schema.Name,
				"line", stats.Lines,
				"error", fmt.Errorf("%w: over %d bytes", ErrLineTooLong, maxLineSize),
			)
			continue
		}

		row := NewRow(schema, line, dec)
		row.number = stats.Lines

		rec, err := c.decode(row)
		if err == nil {
			err = row.Err()
		}
		if err != nil {
			stats.Skipped++
			c.opts.Logger.Debug("skipping line",
				"schema", schema.Name,
				"line", stats.Lines,
				"error", err,
			)
			continue
		}

		records = append(records, rec)
		stats.Decoded++
	}

	return records, stats, nil
}

// readLine appends the next line of br to buf without its line ending. Lines
// over maxLineSize are drained to the newline and reported oversized, with
// only their first maxLineSize bytes kept. io.EOF is returned once no bytes
// remain.
func readLine(br *bufio.Reader, buf []byte) (line []byte, oversized bool, err error) {
	read := false
	for {
		chunk, err := br.ReadSlice('\n')
		read = read || len(chunk) > 0
		content := bytes.TrimSuffix(chunk, []byte("\n"))
		if room := maxLineSize - len(buf); len(content) > room {
			oversized = true
			if room > 0 {
				buf = append(buf, content[:room]...)
			}
		} else if !oversized {
			buf = append(buf, content...)
		}

		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			if !read {
				return nil, false, io.EOF
			}
		case err != nil:
			return nil, false, err
		}
		return bytes.TrimSuffix(buf, []byte("\r")), oversized, nil
	}
}
