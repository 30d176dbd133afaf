// Package reader maps record kinds to the codecs that produce them.
//
// The set of kinds is closed:
//   - KindEquity, KindOption: instruments file, fixed-width records 01 and 02
//   - KindMarketData: daily COTAHIST file, record 01
//   - KindHistoricMarketData: yearly COTAHIST file, record 01
//   - KindSectorClassification: sector classification workbook
//
// A Reader is created for one kind and must be given a Strategy before use.
// The strategy picks the column layout of the kind's source file.
package reader
