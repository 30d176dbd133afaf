package reader

import (
	"fmt"
	"strings"
)

// Kind identifies a record type the registry can produce.
type Kind int

const (
	KindEquity Kind = iota + 1
	KindOption
	KindMarketData
	KindHistoricMarketData
	KindSectorClassification
)

func (k Kind) String() string {
	switch k {
	case KindEquity:
		return "equity"
	case KindOption:
		return "option"
	case KindMarketData:
		return "market_data"
	case KindHistoricMarketData:
		return "historic_market_data"
	case KindSectorClassification:
		return "sector_classification"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Strategy selects the physical layout used to read a kind.
type Strategy int

const (
	StrategyUnset Strategy = iota
	StrategyCurrent
	StrategyLegacy
)

func (s Strategy) String() string {
	switch s {
	case StrategyUnset:
		return "unset"
	case StrategyCurrent:
		return "current"
	case StrategyLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses "current" or "legacy".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return StrategyCurrent, nil
	case "legacy":
		return StrategyLegacy, nil
	default:
		return StrategyUnset, fmt.Errorf("unknown read strategy %q", s)
	}
}
