package fixedwidth

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
)

const dateLayout = "20060102"

// Row gives typed access to the fields of one matching line.
//
// Accessors latch the first error: once a field fails to decode, every later
// accessor returns a zero value and Err reports the original failure. Decode
// functions read all fields and check Err once.
type Row struct {
	schema *Schema
	line   []byte
	dec    *encoding.Decoder
	number int
	err    error
}

// NewRow wraps a raw line. dec may be nil for ASCII/UTF-8 input.
func NewRow(schema *Schema, line []byte, dec *encoding.Decoder) *Row {
	return &Row{schema: schema, line: line, dec: dec}
}

// Number returns the 1-based line number in the source file, 0 if unknown.
func (r *Row) Number() int {
	return r.number
}

// Err returns the first decoding error.
func (r *Row) Err() error {
	return r.err
}

func (r *Row) fail(f Field, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("field %s (col %d): %w", f.Name, f.Start, err)
	}
}

// raw returns the trimmed bytes of a field.
func (r *Row) raw(name string) ([]byte, Field, bool) {
	if r.err != nil {
		return nil, Field{}, false
	}
	f, ok := r.schema.byName[name]
	if !ok {
		r.err = fmt.Errorf("schema %s has no field %s", r.schema.Name, name)
		return nil, f, false
	}
	if len(r.line) < f.end() {
		r.fail(f, fmt.Errorf("%w: need %d columns, have %d", ErrLineTooShort, f.end(), len(r.line)))
		return nil, f, false
	}
	return bytes.TrimSpace(r.line[f.Start-1 : f.end()]), f, true
}

// Text returns a trimmed text field.
func (r *Row) Text(name string) string {
	b, f, ok := r.raw(name)
	if !ok {
		return ""
	}
	if r.dec == nil {
		return string(b)
	}
	s, err := r.dec.Bytes(b)
	if err != nil {
		r.fail(f, fmt.Errorf("%w: %v", ErrMalformedField, err))
		return ""
	}
	return string(s)
}

// Int returns a required integer field.
func (r *Row) Int(name string) int64 {
	v, ok := r.OptionalInt(name)
	if !ok && r.err == nil {
		f := r.schema.byName[name]
		r.fail(f, fmt.Errorf("%w: blank integer", ErrMalformedField))
	}
	return v
}

// OptionalInt returns an integer field; a blank field reports ok=false.
func (r *Row) OptionalInt(name string) (v int64, ok bool) {
	b, f, valid := r.raw(name)
	if !valid || len(b) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		r.fail(f, fmt.Errorf("%w: %q is not an integer", ErrMalformedField, b))
		return 0, false
	}
	return v, true
}

// Decimal returns an implied-decimal field divided by 10^Decimals.
func (r *Row) Decimal(name string) decimal.Decimal {
	b, f, ok := r.raw(name)
	if !ok {
		return decimal.Zero
	}
	if len(b) == 0 {
		r.fail(f, fmt.Errorf("%w: blank decimal", ErrMalformedField))
		return decimal.Zero
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		r.fail(f, fmt.Errorf("%w: %q is not an implied-decimal number", ErrMalformedField, b))
		return decimal.Zero
	}
	return decimal.New(v, -int32(f.Decimals))
}

// Date returns a required YYYYMMDD field.
func (r *Row) Date(name string) time.Time {
	t, ok := r.OptionalDate(name)
	if !ok && r.err == nil {
		f := r.schema.byName[name]
		r.fail(f, fmt.Errorf("%w: blank date", ErrMalformedField))
	}
	return t
}

// OptionalDate returns a YYYYMMDD field; blank and all-zero dates report
// ok=false.
func (r *Row) OptionalDate(name string) (t time.Time, ok bool) {
	b, f, valid := r.raw(name)
	if !valid || len(b) == 0 || string(b) == "00000000" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, string(b))
	if err != nil {
		r.fail(f, fmt.Errorf("%w: %q is not a YYYYMMDD date", ErrMalformedField, b))
		return time.Time{}, false
	}
	return t, true
}

// Code returns the raw single-character code of an enum field.
func (r *Row) Code(name string) string {
	b, _, ok := r.raw(name)
	if !ok {
		return ""
	}
	return string(b)
}

// EnumOf maps the code of an enum field to a variant. Codes absent from the
// table fail the row with ErrUnknownEnumCode.
func EnumOf[E any](r *Row, name string, codes map[string]E) E {
	var zero E
	code := r.Code(name)
	if r.err != nil {
		return zero
	}
	v, ok := codes[code]
	if !ok {
		r.fail(r.schema.byName[name], fmt.Errorf("%w: %q", ErrUnknownEnumCode, code))
		return zero
	}
	return v
}
