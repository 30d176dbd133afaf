package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotAvailable marks a classification field with no matching source data.
const NotAvailable = "N/A"

// -----------------------------------------------------------------------------
// Instruments
// -----------------------------------------------------------------------------

// Equity represents a listed stock, unit or receipt found in the instruments file.
type Equity struct {
	ID             int64                 // Internal ID (0 = unset)
	Ticker         string                // Trading code (e.g., "PETR4")
	ISIN           string                // ISIN code (e.g., "BRPETRACNPR6")
	Description    string                // Short issuer name/description
	Currency       string                // Trading currency (e.g., "BRL")
	MarketCap      decimal.Decimal       // Market capitalization
	LoadDate       time.Time             // Reference date of the file
	Classification *SectorClassification // Nil until reconciled
}

// Option represents an option on equity found in the instruments file.
type Option struct {
	ID               int64           // Internal ID (0 = unset)
	Ticker           string          // Trading code (e.g., "PETRA250")
	ISIN             string          // ISIN code
	Description      string          // Short description
	Strike           decimal.Decimal // Strike price
	StrikeCurrency   string          // Strike currency
	Style            ExerciseStyle   // American or European
	Type             OptionType      // Call or Put
	Expiration       time.Time       // Expiration date
	LoadDate         time.Time       // Reference date of the file
	UnderlyingTicker string          // Trading code of the underlying, as published
	UnderlyingID     int64           // Resolved after load (0 = unresolved)
}

// ExerciseStyle is the exercise style of an option.
type ExerciseStyle int

const (
	ExerciseStyleUnknown ExerciseStyle = iota
	ExerciseStyleAmerican
	ExerciseStyleEuropean
)

func (s ExerciseStyle) String() string {
	switch s {
	case ExerciseStyleAmerican:
		return "american"
	case ExerciseStyleEuropean:
		return "european"
	default:
		return "unknown"
	}
}

// OptionType is the right granted by an option.
type OptionType int

const (
	OptionTypeUnknown OptionType = iota
	OptionTypeCall
	OptionTypePut
)

func (t OptionType) String() string {
	switch t {
	case OptionTypeCall:
		return "call"
	case OptionTypePut:
		return "put"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Market Data
// -----------------------------------------------------------------------------

// MarketData is the daily quote of one instrument (COTAHIST record 01).
type MarketData struct {
	Ticker    string          // Trading code
	TradeDate time.Time       // Session date
	Open      decimal.Decimal // PREABE
	High      decimal.Decimal // PREMAX
	Low       decimal.Decimal // PREMIN
	Average   decimal.Decimal // PREMED
	Close     decimal.Decimal // PREULT (last trade of the session)
	BestBid   decimal.Decimal // PREOFC
	BestAsk   decimal.Decimal // PREOFV
	Trades    int64           // TOTNEG, number of trades
	Quantity  int64           // QUATOT, number of securities traded
	Volume    decimal.Decimal // VOLTOT, financial volume
}

// HistoricMarketData is a quote from a yearly historic file. It carries the
// instrument attributes the yearly files repeat on every line.
type HistoricMarketData struct {
	MarketData
	BDICode         string          // CODBDI
	MarketType      int             // TPMERC (10 = cash, 70 = call, 80 = put, ...)
	ISIN            string          // CODISI
	Strike          decimal.Decimal // PREEXE, zero for non-derivatives
	Expiration      time.Time       // DATVEN, zero when not applicable
	QuotationFactor int64           // FATCOT
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// SectorClassification places a listed company in the B3 sector hierarchy.
type SectorClassification struct {
	Sector       string    // Economic sector
	Subsector    string    // Economic subsector
	Segment      string    // Economic segment
	Company      string    // Company name
	ListingCode  string    // Company listing code, prefix of its tickers (e.g., "PETR")
	SegmentLabel string    // Listing segment label (e.g., "NM", "N1"), may be empty
	Hash         uuid.UUID // Content hash of the six fields above
}

// Unclassified returns the sentinel assigned to equities with no matching
// classification.
func Unclassified() *SectorClassification {
	return &SectorClassification{
		Sector:    NotAvailable,
		Subsector: NotAvailable,
		Segment:   NotAvailable,
	}
}

// IsUnclassified reports whether c is the not-available sentinel.
func (c *SectorClassification) IsUnclassified() bool {
	return c != nil &&
		c.Sector == NotAvailable &&
		c.Subsector == NotAvailable &&
		c.Segment == NotAvailable
}
