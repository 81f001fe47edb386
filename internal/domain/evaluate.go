package domain

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// fieldSeparator joins searchable fields. It cannot be typed into a search
// box, so a term never matches across two fields.
const fieldSeparator = "\u001f"

// Evaluate returns the records matching q in the order q requests. The input
// slice is never modified; the result is a new slice.
func Evaluate(records []Facility, q Query) []Facility {
	term := fold(strings.TrimSpace(q.Search))

	out := make([]Facility, 0, len(records))
	for _, f := range records {
		if matches(f, term, q) {
			out = append(out, f)
		}
	}

	slices.SortStableFunc(out, comparator(q.Sort))
	return out
}

func matches(f Facility, foldedTerm string, q Query) bool {
	if foldedTerm != "" && !strings.Contains(searchText(f), foldedTerm) {
		return false
	}
	return matchesFilters(f, q)
}

// SearchFields returns the searchable fields of f in concatenation order:
// name, address, village, and division when present.
func SearchFields(f Facility) []string {
	fields := []string{f.Name, f.Address, f.Village}
	if d, ok := f.DivisionName(); ok {
		fields = append(fields, d)
	}
	return fields
}

func searchText(f Facility) string {
	return fold(strings.Join(SearchFields(f), fieldSeparator))
}

func matchesFilters(f Facility, q Query) bool {
	for dim, want := range q.Filters {
		if want == Any {
			continue
		}
		got, ok := f.Value(dim)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// comparator orders by capacity (absent as 0) when requested, always falling
// back to the original index so equal keys have a fixed order.
func comparator(mode SortMode) func(a, b Facility) int {
	byIndex := func(a, b Facility) int { return cmp.Compare(a.Index, b.Index) }
	switch mode {
	case SortCapacityAsc:
		return func(a, b Facility) int {
			if c := cmp.Compare(a.CapacityOrZero(), b.CapacityOrZero()); c != 0 {
				return c
			}
			return byIndex(a, b)
		}
	case SortCapacityDesc:
		return func(a, b Facility) int {
			if c := cmp.Compare(b.CapacityOrZero(), a.CapacityOrZero()); c != 0 {
				return c
			}
			return byIndex(a, b)
		}
	default:
		return byIndex
	}
}

// fold applies Unicode case folding. A new Caser is built per call because
// Casers carry state and are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Values returns the distinct present values of dim across records, collated
// for tag. These populate the selection controls.
func Values(records []Facility, dim Dimension, tag language.Tag) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, f := range records {
		v, ok := f.Value(dim)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	collate.New(tag).SortStrings(values)
	return values
}
