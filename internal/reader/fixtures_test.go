package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	fw "github.com/rickgao/b3-refdata/internal/fixedwidth"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustLine(t *testing.T, e *fw.Encoder) string {
	t.Helper()
	b, err := e.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(b)
}

func equityLine(t *testing.T, schema *fw.Schema, ticker, currency string, id int64) string {
	t.Helper()
	e := fw.NewEncoder(schema, charmap.ISO8859_1).
		Date(fLoadDate, day(2024, 1, 15)).
		Text(fTicker, ticker).
		Text(fISIN, "BR"+ticker+"ACNOR").
		Text(fDescription, "AÇÃO "+ticker).
		Text(fCurrency, currency).
		Decimal(fMarketCap, dec("1000000.50"))
	if _, ok := schema.Field(fID); ok {
		e.Int(fID, id)
	}
	return mustLine(t, e)
}

func optionLine(t *testing.T, schema *fw.Schema, ticker, style, typ, underlying string) string {
	t.Helper()
	e := fw.NewEncoder(schema, charmap.ISO8859_1).
		Date(fLoadDate, day(2024, 1, 15)).
		Text(fTicker, ticker).
		Text(fISIN, "BRPETRO00001").
		Text(fDescription, "CALL "+ticker).
		Decimal(fStrike, dec("32.15")).
		Text(fStrikeCurrency, "BRL").
		Code(fStyle, style).
		Code(fType, typ).
		Date(fExpiration, day(2024, 2, 16)).
		Text(fUnderlying, underlying)
	if _, ok := schema.Field(fID); ok {
		e.Int(fID, 7)
	}
	return mustLine(t, e)
}

func quoteLine(t *testing.T, ticker string, date time.Time, close string, expiration time.Time) string {
	t.Helper()
	return mustLine(t, fw.NewEncoder(cotahist, charmap.ISO8859_1).
		Date(fTradeDate, date).
		Text(fBDI, "02").
		Text(fTicker, ticker).
		Int(fMarketType, 10).
		Text(fShortName, "PETROBRAS").
		Text(fSpec, "PN").
		Text(fCurrency, "R$").
		Decimal(fOpen, dec("30.00")).
		Decimal(fHigh, dec("31.50")).
		Decimal(fLow, dec("29.90")).
		Decimal(fAverage, dec("30.70")).
		Decimal(fClose, dec(close)).
		Decimal(fBestBid, dec("31.00")).
		Decimal(fBestAsk, dec("31.02")).
		Int(fTrades, 1234).
		Int(fQuantity, 567800).
		Decimal(fVolume, dec("17431460.00")).
		Decimal(fStrike, dec("0")).
		Text(fOptionIdx, "0").
		Date(fExpiration, expiration).
		Int(fFactor, 1).
		Decimal(fStrikePts, dec("0")).
		Text(fISIN, "BRPETRACNPR6").
		Int(fDistrib, 120))
}

func writeLines(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\r\n")+"\r\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
