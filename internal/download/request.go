package download

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a published file.
type Kind int

const (
	KindInstruments Kind = iota + 1
	KindDailyQuotes
	KindHistoric
	KindSectors
)

func (k Kind) String() string {
	switch k {
	case KindInstruments:
		return "instruments"
	case KindDailyQuotes:
		return "daily-quotes"
	case KindHistoric:
		return "historic"
	case KindSectors:
		return "sectors"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// First and last years accepted for historic files.
const (
	MinYear = 1986
	MaxYear = 9999
)

// YearPlaceholder is replaced with the year in historic source URLs.
const YearPlaceholder = "{year}"

// Request names one file. Year is used only by KindHistoric.
type Request struct {
	Kind Kind
	Year int
}

// Instruments requests the instruments file.
func Instruments() Request { return Request{Kind: KindInstruments} }

// DailyQuotes requests the latest daily quote file.
func DailyQuotes() Request { return Request{Kind: KindDailyQuotes} }

// Historic requests the yearly quote file for year.
func Historic(year int) Request { return Request{Kind: KindHistoric, Year: year} }

// Sectors requests the sector classification workbook.
func Sectors() Request { return Request{Kind: KindSectors} }

// Validate checks the kind and, for historic files, the year.
func (r Request) Validate() error {
	switch r.Kind {
	case KindInstruments, KindDailyQuotes, KindSectors:
		return nil
	case KindHistoric:
		if r.Year < MinYear || r.Year > MaxYear {
			return fmt.Errorf("historic year %d out of range %d..%d", r.Year, MinYear, MaxYear)
		}
		return nil
	default:
		return fmt.Errorf("unknown file kind %s", r.Kind)
	}
}

// FileName returns the cache file name. It is deterministic per request.
func (r Request) FileName() string {
	switch r.Kind {
	case KindInstruments:
		return "instruments.txt"
	case KindDailyQuotes:
		return "daily-quotes.txt"
	case KindHistoric:
		return "historic-quotes-" + strconv.Itoa(r.Year) + ".txt"
	case KindSectors:
		return "sector-classification.xlsx"
	default:
		return ""
	}
}

func (r Request) String() string {
	if r.Kind == KindHistoric {
		return fmt.Sprintf("%s(%d)", r.Kind, r.Year)
	}
	return r.Kind.String()
}

// Source is where a kind is published.
type Source struct {
	URL     string
	Archive bool // Payload is the single file inside a zip archive
}

func (s Source) url(r Request) string {
	if r.Kind != KindHistoric {
		return s.URL
	}
	return strings.ReplaceAll(s.URL, YearPlaceholder, strconv.Itoa(r.Year))
}
