// Package version implements the version-range grammar used to scope when
// a knowledge-graph fact holds, and the comparators that order free-form
// version labels.
//
// The grammar has three forms:
//
//	"unknown"   the fact has no temporal restriction
//	"<V>+"      the fact holds from version V onward
//	"<V1>-<V2>" the fact holds in the inclusive range [V1, V2]
package version

import "strings"

// Unknown is the range string for facts with no temporal restriction.
const Unknown = "unknown"

// Kind discriminates the three range forms.
type Kind int

const (
	// KindUnknown is an open fact with no version restriction.
	KindUnknown Kind = iota

	// KindFrom is valid from a version onward ("2020+").
	KindFrom

	// KindSpan is an inclusive closed range ("2019-2023").
	KindSpan
)

// Range is a parsed version range.
type Range struct {
	kind Kind
	from string
	to   string
}

// Parse interprets a range string. Empty strings and "unknown" both parse
// as the unrestricted range. A string that matches neither the "+" nor the
// "-" form is treated as unrestricted rather than rejected: range strings
// originate from extraction output and must never fail a run.
func Parse(s string) Range {
	s = strings.TrimSpace(s)
	if s == "" || s == Unknown {
		return Range{kind: KindUnknown}
	}

	if strings.HasSuffix(s, "+") {
		from := strings.TrimSuffix(s, "+")
		if from == "" {
			return Range{kind: KindUnknown}
		}
		return Range{kind: KindFrom, from: from}
	}

	if i := strings.Index(s, "-"); i > 0 && i < len(s)-1 {
		return Range{kind: KindSpan, from: s[:i], to: s[i+1:]}
	}

	return Range{kind: KindUnknown}
}

// From builds an open-ended range valid from v onward.
func From(v string) Range {
	if v == "" {
		return Range{kind: KindUnknown}
	}
	return Range{kind: KindFrom, from: v}
}

// Span builds an inclusive closed range [from, to].
func Span(from, to string) Range {
	return Range{kind: KindSpan, from: from, to: to}
}

// Kind returns the range form.
func (r Range) Kind() Kind { return r.kind }

// String renders the range back to its wire form.
func (r Range) String() string {
	switch r.kind {
	case KindFrom:
		return r.from + "+"
	case KindSpan:
		return r.from + "-" + r.to
	default:
		return Unknown
	}
}

// Contains reports whether query falls inside the range under cmp.
// An unrestricted range contains every version. A nil comparator uses
// Lexicographic.
func (r Range) Contains(query string, cmp Comparator) bool {
	if cmp == nil {
		cmp = Lexicographic
	}

	switch r.kind {
	case KindFrom:
		return cmp(query, r.from) >= 0
	case KindSpan:
		return cmp(r.from, query) <= 0 && cmp(query, r.to) <= 0
	default:
		return true
	}
}

// Contains is the convenience form over raw strings: it parses rangeStr
// and checks query under cmp.
func Contains(rangeStr, query string, cmp Comparator) bool {
	return Parse(rangeStr).Contains(query, cmp)
}
