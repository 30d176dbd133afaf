// Package store persists loaded records to PostgreSQL.
//
// Tables and natural keys:
//   - sector_classification: content hash, insert only
//   - equities, options: ticker, upserted
//   - market_data: ticker and trade date, upserted
//   - historic_market_data: ticker and trade date, upserted
//
// Rows are written with pgx.Batch in chunks of the configured batch size.
// A row the server reports as unaffected counts as a conflict.
package store
