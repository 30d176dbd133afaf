package fixedwidth

import (
	"strings"
	"testing"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		disc    string
		fields  []Field
		wantErr string
	}{
		{
			name: "valid",
			disc: "01",
			fields: []Field{
				{Name: "date", Start: 3, Width: 8, Type: Date},
				{Name: "ticker", Start: 11, Width: 12, Type: Text},
				{Name: "price", Start: 23, Width: 13, Type: Decimal, Decimals: 2},
			},
		},
		{
			name:    "empty discriminator",
			disc:    "",
			wantErr: "empty discriminator",
		},
		{
			name:    "overlaps discriminator",
			disc:    "01",
			fields:  []Field{{Name: "ticker", Start: 2, Width: 12}},
			wantErr: "field ticker overlaps discriminator at column 2",
		},
		{
			name: "overlapping fields",
			disc: "01",
			fields: []Field{
				{Name: "a", Start: 3, Width: 5},
				{Name: "b", Start: 7, Width: 5},
			},
			wantErr: "field b overlaps a at column 7",
		},
		{
			name: "duplicate name",
			disc: "01",
			fields: []Field{
				{Name: "a", Start: 3, Width: 1},
				{Name: "a", Start: 4, Width: 1},
			},
			wantErr: "duplicate field a",
		},
		{
			name:    "wide enum",
			disc:    "01",
			fields:  []Field{{Name: "style", Start: 3, Width: 2, Type: Enum}},
			wantErr: "must be one column wide",
		},
		{
			name:    "short date",
			disc:    "01",
			fields:  []Field{{Name: "d", Start: 3, Width: 6, Type: Date}},
			wantErr: "must be eight columns wide",
		},
		{
			name:    "decimals on text",
			disc:    "01",
			fields:  []Field{{Name: "t", Start: 3, Width: 6, Type: Text, Decimals: 2}},
			wantErr: "invalid decimals",
		},
		{
			name:    "zero width",
			disc:    "01",
			fields:  []Field{{Name: "t", Start: 3, Width: 0}},
			wantErr: "invalid range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSchema("test", tt.disc, tt.fields...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewSchema() unexpected error: %v", err)
				}
				if s.Width() != 35 {
					t.Errorf("Width() = %d, want 35", s.Width())
				}
				return
			}
			if err == nil {
				t.Fatalf("NewSchema() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewSchema() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSchemaMatches(t *testing.T) {
	s := MustSchema("equity", "01", Field{Name: "ticker", Start: 3, Width: 4})

	tests := []struct {
		line string
		want bool
	}{
		{"01PETR", true},
		{"02PETR", false},
		{"00HEADER", false},
		{"99TRAILER", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := s.Matches([]byte(tt.line)); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestMustSchemaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSchema() did not panic on invalid layout")
		}
	}()
	MustSchema("bad", "")
}
