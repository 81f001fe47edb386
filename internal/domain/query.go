package domain

import "maps"

// Dimension names a categorical filter.
type Dimension string

const (
	DimensionVillage  Dimension = "village"
	DimensionDivision Dimension = "division"
)

// Dimensions lists the categorical filters in control order.
var Dimensions = []Dimension{DimensionVillage, DimensionDivision}

// Any is the selection that leaves a dimension unfiltered.
const Any = ""

// SortMode selects the result order.
type SortMode string

const (
	SortDefault      SortMode = "default"
	SortCapacityAsc  SortMode = "capacity-asc"
	SortCapacityDesc SortMode = "capacity-desc"
)

// ParseSortMode maps control values to a SortMode. Unknown input yields
// SortDefault.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortCapacityAsc, SortCapacityDesc:
		return SortMode(s)
	default:
		return SortDefault
	}
}

// Query is the current search term, categorical selections, and sort mode.
type Query struct {
	Search  string
	Filters map[Dimension]string
	Sort    SortMode
}

// NewQuery returns the page-load query: empty term, every dimension Any,
// default order.
func NewQuery() Query {
	return Query{Filters: map[Dimension]string{}, Sort: SortDefault}
}

// Selection returns the selection for dim, Any when unset.
func (q Query) Selection(dim Dimension) string {
	if q.Filters == nil {
		return Any
	}
	return q.Filters[dim]
}

// Clone returns a copy of q that shares no state with it.
func (q Query) Clone() Query {
	q.Filters = maps.Clone(q.Filters)
	if q.Filters == nil {
		q.Filters = map[Dimension]string{}
	}
	return q
}

// With returns a copy of q with dim set to value. The receiver's filter map
// is not modified.
func (q Query) With(dim Dimension, value string) Query {
	q = q.Clone()
	if value == Any {
		delete(q.Filters, dim)
	} else {
		q.Filters[dim] = value
	}
	return q
}
