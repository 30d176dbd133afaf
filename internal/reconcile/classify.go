package reconcile

import (
	"strings"

	"github.com/rickgao/b3-refdata/internal/model"
)

// Classify sets Classification on every equity in place.
//
// A classification matches when its listing code equals the first
// len(code) characters of the ticker, ignoring case. The first match in
// input order wins even if a later code is longer. Equities with no match
// get a fresh N/A sentinel. It returns how many equities matched.
func Classify(equities []model.Equity, classifications []model.SectorClassification) int {
	matched := 0
	for i := range equities {
		c := match(equities[i].Ticker, classifications)
		if c == nil {
			equities[i].Classification = model.Unclassified()
			continue
		}
		cp := *c
		equities[i].Classification = &cp
		matched++
	}
	return matched
}

func match(ticker string, classifications []model.SectorClassification) *model.SectorClassification {
	ticker = strings.TrimSpace(ticker)
	for i := range classifications {
		code := strings.TrimSpace(classifications[i].ListingCode)
		if code == "" || len(ticker) < len(code) {
			continue
		}
		if strings.EqualFold(ticker[:len(code)], code) {
			return &classifications[i]
		}
	}
	return nil
}

// ResolveUnderlyings sets UnderlyingID on options whose underlying ticker is
// in the index. It returns how many options were resolved.
func ResolveUnderlyings(options []model.Option, index *TickerIndex) int {
	resolved := 0
	for i := range options {
		id, ok := index.Lookup(options[i].UnderlyingTicker)
		if !ok {
			continue
		}
		options[i].UnderlyingID = id
		resolved++
	}
	return resolved
}
