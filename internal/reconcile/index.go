package reconcile

import (
	"strings"

	"github.com/rickgao/b3-refdata/internal/model"
)

// Pair is one ticker to ID mapping. ID 0 means unassigned.
type Pair struct {
	Ticker string
	ID     int64
}

// TickerIndex maps tickers to internal IDs. Keys are trimmed and upper-cased.
// It is not safe for concurrent use; the owner serializes access.
type TickerIndex struct {
	ids map[string]int64
}

// NewTickerIndex creates an empty index.
func NewTickerIndex() *TickerIndex {
	return &TickerIndex{ids: make(map[string]int64)}
}

// NormalizeTicker returns the index key of a ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Merge adds pairs, last write wins per ticker. Blank tickers are ignored.
// It returns the number of pairs applied.
func (x *TickerIndex) Merge(pairs []Pair) int {
	n := 0
	for _, p := range pairs {
		key := NormalizeTicker(p.Ticker)
		if key == "" {
			continue
		}
		x.ids[key] = p.ID
		n++
	}
	return n
}

// Lookup returns the ID indexed for ticker.
func (x *TickerIndex) Lookup(ticker string) (int64, bool) {
	id, ok := x.ids[NormalizeTicker(ticker)]
	return id, ok
}

// Len returns the number of indexed tickers.
func (x *TickerIndex) Len() int {
	return len(x.ids)
}

// Snapshot returns a copy of the index contents.
func (x *TickerIndex) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(x.ids))
	for k, v := range x.ids {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the index.
func (x *TickerIndex) Clone() *TickerIndex {
	return &TickerIndex{ids: x.Snapshot()}
}

// EquityPairs extracts ticker/ID pairs from equities.
func EquityPairs(equities []model.Equity) []Pair {
	pairs := make([]Pair, len(equities))
	for i, e := range equities {
		pairs[i] = Pair{Ticker: e.Ticker, ID: e.ID}
	}
	return pairs
}

// OptionPairs extracts ticker/ID pairs from options.
func OptionPairs(options []model.Option) []Pair {
	pairs := make([]Pair, len(options))
	for i, o := range options {
		pairs[i] = Pair{Ticker: o.Ticker, ID: o.ID}
	}
	return pairs
}

// IndexEquities merges equities into the index.
func (x *TickerIndex) IndexEquities(equities []model.Equity) int {
	return x.Merge(EquityPairs(equities))
}

// IndexOptions merges options into the index.
func (x *TickerIndex) IndexOptions(options []model.Option) int {
	return x.Merge(OptionPairs(options))
}
