// Package model defines the record types extracted from B3 reference files.
//
// Conventions:
//   - Prices and amounts: decimal.Decimal decoded from implied-decimal integers
//   - Dates: time.Time at midnight UTC (exchange files carry no time of day)
//   - Tickers: exchange trading codes (e.g., "PETR4"), unique within a load
//   - IDs: int64 internal identifiers, 0 until assigned by an external system
package model
