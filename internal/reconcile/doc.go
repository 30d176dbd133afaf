// Package reconcile joins parsed instruments with each other and with the
// sector classification table.
//
// TickerIndex maps normalized tickers to internal IDs and accumulates across
// loads. Classify attaches a classification to every equity by listing code
// prefix; unmatched equities get the N/A sentinel, never nil.
package reconcile
