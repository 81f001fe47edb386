package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Facility is one shelter record. Records are immutable once loaded; the
// engine and renderer only read them.
type Facility struct {
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Village  string  `json:"village"`
	Division *string `json:"division,omitempty"` // nil when the source leaves it unlabeled
	Capacity *int    `json:"capacity,omitempty"` // nil when unknown, never coerced to 0
	Index    int     `json:"index"`
}

// HasCapacity reports whether the capacity was provided.
func (f Facility) HasCapacity() bool { return f.Capacity != nil }

// CapacityOrZero returns the capacity for sorting; absent sorts as 0.
func (f Facility) CapacityOrZero() int {
	if f.Capacity == nil {
		return 0
	}
	return *f.Capacity
}

// DivisionName returns the governing division, or "" with ok=false when absent.
func (f Facility) DivisionName() (string, bool) {
	if f.Division == nil {
		return "", false
	}
	return *f.Division, true
}

// Value returns the record's value for a categorical dimension.
func (f Facility) Value(dim Dimension) (string, bool) {
	switch dim {
	case DimensionVillage:
		return f.Village, true
	case DimensionDivision:
		return f.DivisionName()
	default:
		return "", false
	}
}

// DetailPath returns the relative link to a facility's detail page. The slug
// is path-escaped so that any identifier yields a single path segment.
func DetailPath(slug string) string {
	return "facilities/" + url.PathEscape(slug) + "/index.html"
}

// MapURL returns a map search link for an address.
func MapURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}

// FallbackSlug is the identifier given to records that arrive without one.
// position is 1-based. The store suffixes it when it is already taken.
func FallbackSlug(position int) string {
	return fmt.Sprintf("facility-%03d", position)
}

// CardClass marks a pre-rendered facility card. Cards from older pages may
// lack it and are recognized by their metadata attributes instead.
const CardClass = "facility-card"

// CardSelector matches every pre-rendered card in a listing page.
const CardSelector = "." + CardClass + ", [" + AttrSlug + "], [" + AttrName + "], [" + AttrIndex + "]"

// Card attribute names carried by pre-rendered facility cards.
const (
	AttrSlug     = "data-slug"
	AttrName     = "data-name"
	AttrAddress  = "data-address"
	AttrVillage  = "data-village"
	AttrDivision = "data-division"
	AttrCapacity = "data-capacity"
	AttrIndex    = "data-index"
)

// FromAttributes builds a Facility from the metadata attributes of a
// pre-rendered card. position is the card's 0-based document order and is
// used when data-index is missing or malformed. A malformed capacity is
// treated as absent. An empty data-division counts as unlabeled. A card
// without data-slug yields an empty Slug; the store assigns the fallback.
func FromAttributes(position int, attrs map[string]string) Facility {
	f := Facility{
		Slug:    attrs[AttrSlug],
		Name:    attrs[AttrName],
		Address: attrs[AttrAddress],
		Village: attrs[AttrVillage],
		Index:   position,
	}
	if d, ok := attrs[AttrDivision]; ok && d != "" {
		f.Division = &d
	}
	if c, ok := parseCount(attrs[AttrCapacity]); ok {
		f.Capacity = &c
	}
	if i, ok := parseCount(attrs[AttrIndex]); ok {
		f.Index = i
	}
	return f
}

// parseCount parses a non-negative integer, tolerating thousands separators.
func parseCount(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
