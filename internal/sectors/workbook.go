package sectors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/rickgao/b3-refdata/internal/model"
)

// Summary counts the rows of one workbook build.
type Summary struct {
	Rows    int // Rows read across all sheets
	Dropped int // Company rows seen before the hierarchy was complete
}

// Build reads every sheet of the workbook at path, in sheet order, through
// a single Builder. Context carries across sheet boundaries.
func Build(ctx context.Context, path string, logger *slog.Logger) ([]model.SectorClassification, Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var b Builder
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}

		rows, err := f.Rows(sheet)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		n := 0
		for rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				rows.Close()
				return nil, Summary{}, fmt.Errorf("read sheet %s row %d: %w", sheet, n+1, err)
			}
			b.Add(cols)
			n++
		}
		if err := rows.Close(); err != nil {
			return nil, Summary{}, fmt.Errorf("close sheet %s: %w", sheet, err)
		}
		logger.Debug("read classification sheet", "sheet", sheet, "rows", n)
	}

	records := b.Records()
	logger.Info("built sector classification",
		"path", path,
		"records", len(records),
		"dropped", b.Dropped(),
	)
	return records, Summary{Rows: b.Rows(), Dropped: b.Dropped()}, nil
}
