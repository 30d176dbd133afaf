package fixedwidth

import (
	"bytes"
	"errors"
	"fmt"
)

// Per-line decoding errors. A line failing with any of them is skipped.
var (
	ErrUnknownEnumCode = errors.New("unknown enum code")
	ErrMalformedField  = errors.New("malformed field")
	ErrLineTooShort    = errors.New("line too short")
	ErrLineTooLong     = errors.New("line too long")
)

// FieldType selects how a field's columns are converted.
type FieldType int

const (
	Text FieldType = iota
	Integer
	Decimal
	Date
	Enum
)

func (t FieldType) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Date:
		return "date"
	case Enum:
		return "enum"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field describes one column range of a record.
type Field struct {
	Name     string
	Start    int // 1-based first column
	Width    int
	Type     FieldType
	Decimals int // implied decimal places, Decimal only
}

// end returns the 0-based exclusive end offset.
func (f Field) end() int {
	return f.Start - 1 + f.Width
}

// Schema is the layout of one record type.
type Schema struct {
	Name          string
	Discriminator string
	Fields        []Field

	byName map[string]Field
	width  int
}

// NewSchema validates a layout. Fields must not overlap each other or the
// discriminator, and names must be unique.
func NewSchema(name, discriminator string, fields ...Field) (*Schema, error) {
	if discriminator == "" {
		return nil, fmt.Errorf("schema %s: empty discriminator", name)
	}

	s := &Schema{
		Name:          name,
		Discriminator: discriminator,
		Fields:        fields,
		byName:        make(map[string]Field, len(fields)),
		width:         len(discriminator),
	}

	taken := make([]string, 0, 256)
	claim := func(owner string, from, to int) error {
		for len(taken) < to {
			taken = append(taken, "")
		}
		for i := from; i < to; i++ {
			if taken[i] != "" {
				return fmt.Errorf("schema %s: field %s overlaps %s at column %d", name, owner, taken[i], i+1)
			}
			taken[i] = owner
		}
		return nil
	}

	if err := claim("discriminator", 0, len(discriminator)); err != nil {
		return nil, err
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema %s: field without name", name)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate field %s", name, f.Name)
		}
		if f.Start < 1 || f.Width < 1 {
			return nil, fmt.Errorf("schema %s: field %s has invalid range %d+%d", name, f.Name, f.Start, f.Width)
		}
		if f.Type == Enum && f.Width != 1 {
			return nil, fmt.Errorf("schema %s: enum field %s must be one column wide", name, f.Name)
		}
		if f.Type == Date && f.Width != 8 {
			return nil, fmt.Errorf("schema %s: date field %s must be eight columns wide", name, f.Name)
		}
		if f.Decimals < 0 || (f.Type != Decimal && f.Decimals != 0) {
			return nil, fmt.Errorf("schema %s: field %s has invalid decimals %d", name, f.Name, f.Decimals)
		}
		if err := claim(f.Name, f.Start-1, f.end()); err != nil {
			return nil, err
		}
		s.byName[f.Name] = f
		if f.end() > s.width {
			s.width = f.end()
		}
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid layout. It is meant
// for package-level layout tables.
func MustSchema(name, discriminator string, fields ...Field) *Schema {
	s, err := NewSchema(name, discriminator, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Width returns the minimum line length holding every field.
func (s *Schema) Width() int {
	return s.width
}

// Field returns the named field.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Matches reports whether line carries this schema's discriminator.
func (s *Schema) Matches(line []byte) bool {
	return bytes.HasPrefix(line, []byte(s.Discriminator))
}
