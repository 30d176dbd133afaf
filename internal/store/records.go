package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/b3-refdata/internal/model"
)

const (
	insertClassification = `
		INSERT INTO sector_classification (hash, sector, subsector, segment, company, listing_code, segment_label)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO NOTHING`

	upsertEquity = `
		INSERT INTO equities (ticker, internal_id, isin, description, currency, market_cap, load_date, classification_hash)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8::uuid)
		ON CONFLICT (ticker) DO UPDATE SET
			internal_id = COALESCE(EXCLUDED.internal_id, equities.internal_id),
			isin = EXCLUDED.isin,
			description = EXCLUDED.description,
			currency = EXCLUDED.currency,
			market_cap = EXCLUDED.market_cap,
			load_date = EXCLUDED.load_date,
			classification_hash = EXCLUDED.classification_hash
		WHERE equities.load_date <= EXCLUDED.load_date`

	upsertOption = `
		INSERT INTO options (ticker, internal_id, isin, description, strike, strike_currency, style, option_type,
			expiration, load_date, underlying_ticker, underlying_id)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (ticker) DO UPDATE SET
			internal_id = COALESCE(EXCLUDED.internal_id, options.internal_id),
			isin = EXCLUDED.isin,
			description = EXCLUDED.description,
			strike = EXCLUDED.strike,
			strike_currency = EXCLUDED.strike_currency,
			style = EXCLUDED.style,
			option_type = EXCLUDED.option_type,
			expiration = EXCLUDED.expiration,
			load_date = EXCLUDED.load_date,
			underlying_ticker = EXCLUDED.underlying_ticker,
			underlying_id = COALESCE(EXCLUDED.underlying_id, options.underlying_id)
		WHERE options.load_date <= EXCLUDED.load_date`

	upsertMarketData = `
		INSERT INTO market_data (ticker, trade_date, open, high, low, average, close, best_bid, best_ask,
			trades, quantity, volume)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9::numeric,
			$10, $11, $12::numeric)
		ON CONFLICT (ticker, trade_date) DO UPDATE SET
			open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			average = EXCLUDED.average, close = EXCLUDED.close,
			best_bid = EXCLUDED.best_bid, best_ask = EXCLUDED.best_ask,
			trades = EXCLUDED.trades, quantity = EXCLUDED.quantity, volume = EXCLUDED.volume`

	upsertHistoric = `
		INSERT INTO historic_market_data (ticker, trade_date, bdi_code, market_type, isin, open, high, low, average,
			close, best_bid, best_ask, trades, quantity, volume, strike, expiration, quotation_factor)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10::numeric,
			$11::numeric, $12::numeric, $13, $14, $15::numeric, $16::numeric, $17, $18)
		ON CONFLICT (ticker, trade_date) DO UPDATE SET
			bdi_code = EXCLUDED.bdi_code, market_type = EXCLUDED.market_type, isin = EXCLUDED.isin,
			open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			average = EXCLUDED.average, close = EXCLUDED.close,
			best_bid = EXCLUDED.best_bid, best_ask = EXCLUDED.best_ask,
			trades = EXCLUDED.trades, quantity = EXCLUDED.quantity, volume = EXCLUDED.volume,
			strike = EXCLUDED.strike, expiration = EXCLUDED.expiration,
			quotation_factor = EXCLUDED.quotation_factor`
)

// SaveClassifications inserts classifications not yet stored.
func (s *Store) SaveClassifications(ctx context.Context, cs []model.SectorClassification) (Result, error) {
	rows := make([][]any, len(cs))
	for i, c := range cs {
		rows[i] = classificationRow(c)
	}
	return s.write(ctx, "sector_classification", insertClassification, rows)
}

// SaveEquities upserts equities by ticker. Rows older than the stored load
// date are left alone and count as conflicts.
func (s *Store) SaveEquities(ctx context.Context, equities []model.Equity) (Result, error) {
	rows := make([][]any, len(equities))
	for i, e := range equities {
		rows[i] = equityRow(e)
	}
	return s.write(ctx, "equities", upsertEquity, rows)
}

// SaveOptions upserts options by ticker.
func (s *Store) SaveOptions(ctx context.Context, options []model.Option) (Result, error) {
	rows := make([][]any, len(options))
	for i, o := range options {
		rows[i] = optionRow(o)
	}
	return s.write(ctx, "options", upsertOption, rows)
}

// SaveMarketData upserts current quotes by ticker and trade date.
func (s *Store) SaveMarketData(ctx context.Context, quotes []model.MarketData) (Result, error) {
	rows := make([][]any, len(quotes))
	for i, q := range quotes {
		rows[i] = append([]any{q.Ticker, q.TradeDate}, quoteValues(q)...)
	}
	return s.write(ctx, "market_data", upsertMarketData, rows)
}

// SaveHistoric upserts historic quotes by ticker and trade date.
func (s *Store) SaveHistoric(ctx context.Context, quotes []model.HistoricMarketData) (Result, error) {
	rows := make([][]any, len(quotes))
	for i, h := range quotes {
		rows[i] = historicRow(h)
	}
	return s.write(ctx, "historic_market_data", upsertHistoric, rows)
}

func classificationRow(c model.SectorClassification) []any {
	return []any{
		c.Hash.String(), c.Sector, c.Subsector, c.Segment, c.Company, c.ListingCode, c.SegmentLabel,
	}
}

func equityRow(e model.Equity) []any {
	var hash *string
	if c := e.Classification; c != nil && !c.IsUnclassified() {
		h := c.Hash.String()
		hash = &h
	}
	return []any{
		e.Ticker, nullID(e.ID), e.ISIN, e.Description, e.Currency, num(e.MarketCap), e.LoadDate, hash,
	}
}

func optionRow(o model.Option) []any {
	return []any{
		o.Ticker, nullID(o.ID), o.ISIN, o.Description, num(o.Strike), o.StrikeCurrency,
		o.Style.String(), o.Type.String(), o.Expiration, o.LoadDate, o.UnderlyingTicker, nullID(o.UnderlyingID),
	}
}

// quoteValues returns the price columns shared by both quote tables.
func quoteValues(q model.MarketData) []any {
	return []any{
		num(q.Open), num(q.High), num(q.Low), num(q.Average), num(q.Close),
		num(q.BestBid), num(q.BestAsk), q.Trades, q.Quantity, num(q.Volume),
	}
}

func historicRow(h model.HistoricMarketData) []any {
	row := []any{h.Ticker, h.TradeDate, h.BDICode, h.MarketType, h.ISIN}
	row = append(row, quoteValues(h.MarketData)...)
	return append(row, num(h.Strike), nullDate(h.Expiration), h.QuotationFactor)
}

// num renders a decimal as text for a ::numeric parameter.
func num(d decimal.Decimal) string {
	return d.String()
}

// nullID maps the unassigned ID 0 to NULL.
func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func nullDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
