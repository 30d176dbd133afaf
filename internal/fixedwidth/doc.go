// Package fixedwidth decodes exchange files made of fixed-width text lines.
//
// Every line starts with a record-type discriminator (columns 1..K). A Schema
// names one discriminator value and the column layout of the fields that follow
// it; lines carrying any other discriminator, including file headers ("00") and
// trailers ("99"), are skipped. Several schemas can therefore scan the same
// physical file independently.
//
// Column positions are 1-based and byte-oriented, as the B3 layout documents
// print them. Text fields are decoded from ISO-8859-1 by default.
//
// Field types:
//   - Text: trimmed string
//   - Integer: zero-padded digits
//   - Decimal: implied-decimal integer (a V99 field holding 12345 is 123.45)
//   - Date: YYYYMMDD
//   - Enum: single-character code mapped by the caller
package fixedwidth
