// Package download keeps a local cache of the exchange's published files.
//
// Resolve maps a Request to a path under the download directory. A cached
// file is returned as is unless a refresh is forced; otherwise the file is
// fetched with one GET into a temporary file in the same directory and
// renamed into place, so a failed fetch never leaves a file at the target
// path. Archive sources (the sector classification workbook always is one)
// must hold exactly one file, which becomes the cached payload.
//
// Files:
//   - instruments.txt
//   - daily-quotes.txt
//   - historic-quotes-<year>.txt
//   - sector-classification.xlsx
//
// The client never retries. HTTPError.IsRetryable tells callers which
// failures are worth another attempt.
package download
