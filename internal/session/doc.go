// Package session orchestrates loads of exchange reference data.
//
// A Session owns the loaded collections and the ticker index. Each load
// resolves its file through the download cache, reads typed records, runs
// reconciliation and, when a Store is attached, persists the result.
//
// Instrument and quote collections are replaced by each load. The ticker
// index and the classification table accumulate for the life of the session.
//
// Load calls hold the session's write lock for their whole duration, so two
// loads on one session never interleave. Accessors take the read lock and
// return copies.
package session
