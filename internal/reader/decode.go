package reader

import (
	"strings"
	"time"

	fw "github.com/rickgao/b3-refdata/internal/fixedwidth"
	"github.com/rickgao/b3-refdata/internal/model"
)

var (
	exerciseStyles = map[string]model.ExerciseStyle{
		"A": model.ExerciseStyleAmerican,
		"E": model.ExerciseStyleEuropean,
	}
	optionTypes = map[string]model.OptionType{
		"C": model.OptionTypeCall,
		"P": model.OptionTypePut,
	}
	// COTAHIST prints currencies the way the bulletin did.
	currencyAliases = map[string]string{
		"R$":  "BRL",
		"US$": "USD",
	}
)

// noExpiration is the DATVEN value COTAHIST uses for non-derivatives.
var noExpiration = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func normalizeCurrency(c string) string {
	c = strings.TrimSpace(c)
	if alias, ok := currencyAliases[c]; ok {
		return alias
	}
	return strings.ToUpper(c)
}

// optionalID reads a layout's internal ID; layouts without one yield 0.
func optionalID(r *fw.Row, schemaHasID bool) int64 {
	if !schemaHasID {
		return 0
	}
	id, _ := r.OptionalInt(fID)
	return id
}

func decodeEquity(schema *fw.Schema) fw.DecodeFunc[model.Equity] {
	_, hasID := schema.Field(fID)
	return func(r *fw.Row) (model.Equity, error) {
		return model.Equity{
			ID:          optionalID(r, hasID),
			Ticker:      r.Text(fTicker),
			ISIN:        r.Text(fISIN),
			Description: r.Text(fDescription),
			Currency:    normalizeCurrency(r.Text(fCurrency)),
			MarketCap:   r.Decimal(fMarketCap),
			LoadDate:    r.Date(fLoadDate),
		}, r.Err()
	}
}

func decodeOption(schema *fw.Schema) fw.DecodeFunc[model.Option] {
	_, hasID := schema.Field(fID)
	return func(r *fw.Row) (model.Option, error) {
		return model.Option{
			ID:               optionalID(r, hasID),
			Ticker:           r.Text(fTicker),
			ISIN:             r.Text(fISIN),
			Description:      r.Text(fDescription),
			Strike:           r.Decimal(fStrike),
			StrikeCurrency:   normalizeCurrency(r.Text(fStrikeCurrency)),
			Style:            fw.EnumOf(r, fStyle, exerciseStyles),
			Type:             fw.EnumOf(r, fType, optionTypes),
			Expiration:       r.Date(fExpiration),
			LoadDate:         r.Date(fLoadDate),
			UnderlyingTicker: r.Text(fUnderlying),
		}, r.Err()
	}
}

func decodeQuote(r *fw.Row) model.MarketData {
	return model.MarketData{
		Ticker:    r.Text(fTicker),
		TradeDate: r.Date(fTradeDate),
		Open:      r.Decimal(fOpen),
		High:      r.Decimal(fHigh),
		Low:       r.Decimal(fLow),
		Average:   r.Decimal(fAverage),
		Close:     r.Decimal(fClose),
		BestBid:   r.Decimal(fBestBid),
		BestAsk:   r.Decimal(fBestAsk),
		Trades:    r.Int(fTrades),
		Quantity:  r.Int(fQuantity),
		Volume:    r.Decimal(fVolume),
	}
}

func decodeMarketData(_ *fw.Schema) fw.DecodeFunc[model.MarketData] {
	return func(r *fw.Row) (model.MarketData, error) {
		return decodeQuote(r), r.Err()
	}
}

func decodeHistoric(_ *fw.Schema) fw.DecodeFunc[model.HistoricMarketData] {
	return func(r *fw.Row) (model.HistoricMarketData, error) {
		h := model.HistoricMarketData{
			MarketData:      decodeQuote(r),
			BDICode:         r.Text(fBDI),
			MarketType:      int(r.Int(fMarketType)),
			ISIN:            r.Text(fISIN),
			Strike:          r.Decimal(fStrike),
			QuotationFactor: r.Int(fFactor),
		}
		if exp, ok := r.OptionalDate(fExpiration); ok && !exp.Equal(noExpiration) {
			h.Expiration = exp
		}
		return h, r.Err()
	}
}
