package sectors

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rickgao/b3-refdata/internal/model"
)

// Columns is the number of cells the state machine looks at.
const Columns = 5

// Namespace seeds the content hash of every classification.
var Namespace = uuid.MustParse("6f1c2a4e-9b3d-5e7f-8a10-b3c1a55f1e00")

// Hash returns the content hash of a classification's six text fields.
func Hash(c *model.SectorClassification) uuid.UUID {
	joined := strings.Join([]string{
		c.Sector, c.Subsector, c.Segment, c.Company, c.ListingCode, c.SegmentLabel,
	}, "-")
	return uuid.NewSHA1(Namespace, []byte(joined))
}

// Builder turns classification rows into records. The zero value is ready.
type Builder struct {
	sector    string
	subsector string
	segment   string

	seen    map[uuid.UUID]struct{}
	out     []model.SectorClassification
	rows    int
	dropped int
}

// Add feeds one row. Rows with fewer than five cells are padded with blanks.
func (b *Builder) Add(row []string) {
	b.rows++
	var c [Columns]string
	for i := 0; i < Columns && i < len(row); i++ {
		c[i] = strings.TrimSpace(row[i])
	}
	set := func(i int) bool { return c[i] != "" }

	switch {
	case set(0) && set(1) && set(2) && !set(3) && !set(4):
		b.sector, b.subsector, b.segment = c[0], c[1], c[2]
	case !set(0) && set(1) && set(2) && !set(3) && !set(4):
		b.subsector, b.segment = c[1], c[2]
	case !set(0) && !set(1) && set(2) && !set(3) && !set(4):
		b.segment = c[2]
	case !set(0) && !set(1) && set(2) && set(3):
		b.company(c[2], c[3], c[4])
	}
}

func (b *Builder) company(name, code, label string) {
	if b.sector == "" || b.subsector == "" || b.segment == "" {
		b.dropped++
		return
	}

	rec := model.SectorClassification{
		Sector:       b.sector,
		Subsector:    b.subsector,
		Segment:      b.segment,
		Company:      name,
		ListingCode:  code,
		SegmentLabel: label,
	}
	rec.Hash = Hash(&rec)

	if b.seen == nil {
		b.seen = make(map[uuid.UUID]struct{})
	}
	if _, dup := b.seen[rec.Hash]; dup {
		return
	}
	b.seen[rec.Hash] = struct{}{}
	b.out = append(b.out, rec)
}

// Records returns the classifications emitted so far, in row order.
func (b *Builder) Records() []model.SectorClassification {
	out := make([]model.SectorClassification, len(b.out))
	copy(out, b.out)
	return out
}

// Rows reports how many rows were fed.
func (b *Builder) Rows() int {
	return b.rows
}

// Dropped reports company rows seen before the hierarchy was complete.
func (b *Builder) Dropped() int {
	return b.dropped
}

// BuildRows runs a fresh Builder over rows.
func BuildRows(rows [][]string) []model.SectorClassification {
	var b Builder
	for _, row := range rows {
		b.Add(row)
	}
	return b.Records()
}
