// Package sectors rebuilds the exchange's sector classification table.
//
// The classification workbook encodes a sector > subsector > segment >
// company hierarchy purely through which of its first five columns are blank.
// Builder walks the rows with three pieces of running context and emits one
// model.SectorClassification per company row whose context is complete.
//
// Row shapes (cells are trimmed first):
//   - sector, subsector, segment set; 4 and 5 blank: new sector context
//   - only subsector and segment set: new subsector and segment
//   - only segment set: new segment
//   - 1 and 2 blank, 3 and 4 set: company row (column 5 is the segment label)
//
// Anything else is a separator or title row and is ignored.
package sectors
