package sorting

import (
	"strconv"
	"strings"
)

// Comparator selects the sort key and direction.
type Comparator int

const (
	Year Comparator = iota
	StreamsAsc
	StreamsDesc
	Title
)

// Default is used for any selector outside the known range.
const Default = Title

// Record is the view of an item the comparators read.
type Record interface {
	Title() string
	Year() int
	Streams() int
}

var names = map[Comparator]string{
	Year:        "year",
	StreamsAsc:  "streams-asc",
	StreamsDesc: "streams-desc",
	Title:       "title",
}

// Comparators lists the selectors in raw-value order.
func Comparators() []Comparator {
	return []Comparator{Year, StreamsAsc, StreamsDesc, Title}
}

// Decode maps a raw selector (0-3) to a [Comparator], falling back to [Title].
func Decode(raw int) Comparator {
	c := Comparator(raw)
	if c < Year || c > Title {
		return Default
	}
	return c
}

// Parse maps a selector name or raw digit to a [Comparator], falling back to [Title].
func Parse(s string) Comparator {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range names {
		if name == s {
			return c
		}
	}
	if raw, err := strconv.Atoi(s); err == nil {
		return Decode(raw)
	}
	return Default
}

// String returns the selector name used in flags and config.
func (c Comparator) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return names[Default]
}

// Label returns a human readable description.
func (c Comparator) Label() string {
	switch c {
	case Year:
		return "sort by year"
	case StreamsAsc:
		return "sort by streams - ascending order"
	case StreamsDesc:
		return "sort by streams - descending order"
	default:
		return "sort alphabetically"
	}
}

// Next cycles through the selectors in raw-value order.
func (c Comparator) Next() Comparator {
	return Decode((int(Decode(int(c))) + 1) % len(names))
}

// IsFirstHigher reports whether a must be placed strictly after b.
//
// Equal keys report false for every selector.
func (c Comparator) IsFirstHigher(a, b Record) bool {
	switch c {
	case Year:
		return a.Year() > b.Year()
	case StreamsAsc:
		return a.Streams() > b.Streams()
	case StreamsDesc:
		return a.Streams() < b.Streams()
	default:
		return strings.Compare(a.Title(), b.Title()) > 0
	}
}
