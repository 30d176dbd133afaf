package fixedwidth

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
)

// Encoder builds a line for a schema. Unset fields are left blank. Like Row,
// it latches the first error.
type Encoder struct {
	schema *Schema
	enc    *encoding.Encoder
	line   []byte
	err    error
}

// NewEncoder starts a line holding only the discriminator. e may be nil to
// write text fields as they are.
func NewEncoder(schema *Schema, e encoding.Encoding) *Encoder {
	line := bytes.Repeat([]byte{' '}, schema.Width())
	copy(line, schema.Discriminator)

	enc := &Encoder{schema: schema, line: line}
	if e != nil {
		enc.enc = e.NewEncoder()
	}
	return enc
}

func (e *Encoder) field(name string) (Field, bool) {
	if e.err != nil {
		return Field{}, false
	}
	f, ok := e.schema.byName[name]
	if !ok {
		e.err = fmt.Errorf("schema %s has no field %s", e.schema.Name, name)
	}
	return f, ok
}

func (e *Encoder) put(f Field, b []byte) {
	if len(b) > f.Width {
		e.err = fmt.Errorf("field %s: %q exceeds %d columns", f.Name, b, f.Width)
		return
	}
	copy(e.line[f.Start-1:f.end()], b)
}

// putDigits right-aligns v zero-padded to the field width.
func (e *Encoder) putDigits(f Field, v int64) {
	if v < 0 {
		e.err = fmt.Errorf("field %s: negative value %d", f.Name, v)
		return
	}
	if len(strconv.FormatInt(v, 10)) > f.Width {
		e.err = fmt.Errorf("field %s: %d exceeds %d columns", f.Name, v, f.Width)
		return
	}
	e.put(f, []byte(fmt.Sprintf("%0*d", f.Width, v)))
}

// Text writes a left-aligned, space-padded value.
func (e *Encoder) Text(name, v string) *Encoder {
	f, ok := e.field(name)
	if !ok {
		return e
	}
	b := []byte(v)
	if e.enc != nil {
		var err error
		if b, err = e.enc.Bytes(b); err != nil {
			e.err = fmt.Errorf("field %s: %w", name, err)
			return e
		}
	}
	e.put(f, b)
	return e
}

// Int writes a zero-padded integer.
func (e *Encoder) Int(name string, v int64) *Encoder {
	if f, ok := e.field(name); ok {
		e.putDigits(f, v)
	}
	return e
}

// Decimal writes d as an implied-decimal integer. Digits beyond the field's
// decimal places are an error, not rounded.
func (e *Encoder) Decimal(name string, d decimal.Decimal) *Encoder {
	f, ok := e.field(name)
	if !ok {
		return e
	}
	shifted := d.Shift(int32(f.Decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		e.err = fmt.Errorf("field %s: %s has more than %d decimals", name, d, f.Decimals)
		return e
	}
	e.putDigits(f, shifted.IntPart())
	return e
}

// Date writes a YYYYMMDD date.
func (e *Encoder) Date(name string, t time.Time) *Encoder {
	if f, ok := e.field(name); ok {
		e.put(f, []byte(t.Format(dateLayout)))
	}
	return e
}

// Code writes the raw code of an enum field.
func (e *Encoder) Code(name, code string) *Encoder {
	if f, ok := e.field(name); ok {
		e.put(f, []byte(code))
	}
	return e
}

// Bytes returns the encoded line.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return bytes.Clone(e.line), nil
}

// Err returns the first encoding error.
func (e *Encoder) Err() error {
	return e.err
}
