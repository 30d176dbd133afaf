package reader

import (
	fw "github.com/rickgao/b3-refdata/internal/fixedwidth"
)

// Record discriminators (columns 1-2).
const (
	DiscEquity = "01" // instruments file: cash equity
	DiscOption = "02" // instruments file: option on equity
	DiscQuote  = "01" // COTAHIST: quote
)

// Field names shared by every layout of a kind.
const (
	fLoadDate       = "load_date"
	fTicker         = "ticker"
	fISIN           = "isin"
	fID             = "id"
	fDescription    = "description"
	fCurrency       = "currency"
	fMarketCap      = "market_cap"
	fStrike         = "strike"
	fStrikeCurrency = "strike_currency"
	fStyle          = "style"
	fType           = "type"
	fExpiration     = "expiration"
	fUnderlying     = "underlying"

	fTradeDate  = "trade_date"
	fBDI        = "bdi"
	fMarketType = "market_type"
	fShortName  = "short_name"
	fSpec       = "specification"
	fOpen       = "open"
	fHigh       = "high"
	fLow        = "low"
	fAverage    = "average"
	fClose      = "close"
	fBestBid    = "best_bid"
	fBestAsk    = "best_ask"
	fTrades     = "trades"
	fQuantity   = "quantity"
	fVolume     = "volume"
	fOptionIdx  = "option_index"
	fFactor     = "factor"
	fStrikePts  = "strike_points"
	fDistrib    = "distribution"
)

// Instruments file, current layout: internal IDs and 60-column descriptions.
var (
	equityCurrent = fw.MustSchema("equity/current", DiscEquity,
		fw.Field{Name: fLoadDate, Start: 3, Width: 8, Type: fw.Date},
		fw.Field{Name: fTicker, Start: 11, Width: 12, Type: fw.Text},
		fw.Field{Name: fISIN, Start: 23, Width: 12, Type: fw.Text},
		fw.Field{Name: fID, Start: 35, Width: 10, Type: fw.Integer},
		fw.Field{Name: fDescription, Start: 45, Width: 60, Type: fw.Text},
		fw.Field{Name: fCurrency, Start: 105, Width: 3, Type: fw.Text},
		fw.Field{Name: fMarketCap, Start: 108, Width: 18, Type: fw.Decimal, Decimals: 2},
	)

	optionCurrent = fw.MustSchema("option/current", DiscOption,
		fw.Field{Name: fLoadDate, Start: 3, Width: 8, Type: fw.Date},
		fw.Field{Name: fTicker, Start: 11, Width: 12, Type: fw.Text},
		fw.Field{Name: fISIN, Start: 23, Width: 12, Type: fw.Text},
		fw.Field{Name: fID, Start: 35, Width: 10, Type: fw.Integer},
		fw.Field{Name: fDescription, Start: 45, Width: 60, Type: fw.Text},
		fw.Field{Name: fStrike, Start: 105, Width: 13, Type: fw.Decimal, Decimals: 2},
		fw.Field{Name: fStrikeCurrency, Start: 118, Width: 3, Type: fw.Text},
		fw.Field{Name: fStyle, Start: 121, Width: 1, Type: fw.Enum},
		fw.Field{Name: fType, Start: 122, Width: 1, Type: fw.Enum},
		fw.Field{Name: fExpiration, Start: 123, Width: 8, Type: fw.Date},
		fw.Field{Name: fUnderlying, Start: 131, Width: 12, Type: fw.Text},
	)
)

// Instruments file, legacy layout: no internal IDs, 40-column descriptions
// and COTAHIST-style 4-column currency codes ("R$").
var (
	equityLegacy = fw.MustSchema("equity/legacy", DiscEquity,
		fw.Field{Name: fLoadDate, Start: 3, Width: 8, Type: fw.Date},
		fw.Field{Name: fTicker, Start: 11, Width: 12, Type: fw.Text},
		fw.Field{Name: fISIN, Start: 23, Width: 12, Type: fw.Text},
		fw.Field{Name: fDescription, Start: 35, Width: 40, Type: fw.Text},
		fw.Field{Name: fCurrency, Start: 75, Width: 4, Type: fw.Text},
		fw.Field{Name: fMarketCap, Start: 79, Width: 18, Type: fw.Decimal, Decimals: 2},
	)

	optionLegacy = fw.MustSchema("option/legacy", DiscOption,
		fw.Field{Name: fLoadDate, Start: 3, Width: 8, Type: fw.Date},
		fw.Field{Name: fTicker, Start: 11, Width: 12, Type: fw.Text},
		fw.Field{Name: fISIN, Start: 23, Width: 12, Type: fw.Text},
		fw.Field{Name: fDescription, Start: 35, Width: 40, Type: fw.Text},
		fw.Field{Name: fStrike, Start: 75, Width: 13, Type: fw.Decimal, Decimals: 2},
		fw.Field{Name: fStrikeCurrency, Start: 88, Width: 4, Type: fw.Text},
		fw.Field{Name: fStyle, Start: 92, Width: 1, Type: fw.Enum},
		fw.Field{Name: fType, Start: 93, Width: 1, Type: fw.Enum},
		fw.Field{Name: fExpiration, Start: 94, Width: 8, Type: fw.Date},
		fw.Field{Name: fUnderlying, Start: 102, Width: 12, Type: fw.Text},
	)
)

// COTAHIST quote record, 245 columns. The layout is shared by the daily and
// yearly files and has not changed across strategy versions.
var cotahistFields = []fw.Field{
	{Name: fTradeDate, Start: 3, Width: 8, Type: fw.Date},
	{Name: fBDI, Start: 11, Width: 2, Type: fw.Text},
	{Name: fTicker, Start: 13, Width: 12, Type: fw.Text},
	{Name: fMarketType, Start: 25, Width: 3, Type: fw.Integer},
	{Name: fShortName, Start: 28, Width: 12, Type: fw.Text},
	{Name: fSpec, Start: 40, Width: 10, Type: fw.Text},
	{Name: fCurrency, Start: 53, Width: 4, Type: fw.Text},
	{Name: fOpen, Start: 57, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fHigh, Start: 70, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fLow, Start: 83, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fAverage, Start: 96, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fClose, Start: 109, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fBestBid, Start: 122, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fBestAsk, Start: 135, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fTrades, Start: 148, Width: 5, Type: fw.Integer},
	{Name: fQuantity, Start: 153, Width: 18, Type: fw.Integer},
	{Name: fVolume, Start: 171, Width: 18, Type: fw.Decimal, Decimals: 2},
	{Name: fStrike, Start: 189, Width: 13, Type: fw.Decimal, Decimals: 2},
	{Name: fOptionIdx, Start: 202, Width: 1, Type: fw.Text},
	{Name: fExpiration, Start: 203, Width: 8, Type: fw.Date},
	{Name: fFactor, Start: 211, Width: 7, Type: fw.Integer},
	{Name: fStrikePts, Start: 218, Width: 13, Type: fw.Decimal, Decimals: 6},
	{Name: fISIN, Start: 231, Width: 12, Type: fw.Text},
	{Name: fDistrib, Start: 243, Width: 3, Type: fw.Integer},
}

var cotahist = fw.MustSchema("cotahist", DiscQuote, cotahistFields...)

// layouts is the per-kind layout table.
var layouts = map[Kind]map[Strategy]*fw.Schema{
	KindEquity: {
		StrategyCurrent: equityCurrent,
		StrategyLegacy:  equityLegacy,
	},
	KindOption: {
		StrategyCurrent: optionCurrent,
		StrategyLegacy:  optionLegacy,
	},
	KindMarketData: {
		StrategyCurrent: cotahist,
		StrategyLegacy:  cotahist,
	},
	KindHistoricMarketData: {
		StrategyCurrent: cotahist,
		StrategyLegacy:  cotahist,
	},
}

// Layout returns the fixed-width layout of a kind under a strategy.
func Layout(kind Kind, strategy Strategy) (*fw.Schema, bool) {
	s, ok := layouts[kind][strategy]
	return s, ok
}
