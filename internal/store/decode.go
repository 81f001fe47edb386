package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"github.com/tidwall/gjson"
)

var (
	// ErrMalformedPayload marks a record collection that cannot be used at all.
	ErrMalformedPayload = errors.New("malformed record collection")
	// ErrDuplicateSlug marks a collection where two records share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// Defect describes a per-field problem that was tolerated during decoding.
// The affected field is treated as absent.
type Defect struct {
	Index  int    // 0-based position in the payload
	Field  string // "" when the whole entry was skipped
	Reason string
}

func (d Defect) String() string {
	if d.Field == "" {
		return fmt.Sprintf("record %d: %s", d.Index, d.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", d.Index, d.Field, d.Reason)
}

// Field aliases observed across generator variants, preferred name first.
var (
	divisionKeys = []string{"division", "branch"}
	villageKeys  = []string{"village", "li"}
)

// Decode converts a serialized record collection into facilities. The
// payload must be a JSON array; anything else fails with ErrMalformedPayload.
// Per-field defects are reported and never fail the decode. Entries that are
// not objects are skipped with a defect.
func Decode(payload []byte) ([]domain.Facility, []Defect, error) {
	if !gjson.ValidBytes(payload) {
		return nil, nil, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}
	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("%w: top level is %s, want array", ErrMalformedPayload, root.Type)
	}

	var (
		records []domain.Facility
		defects []Defect
	)
	position := 0

	root.ForEach(func(_, entry gjson.Result) bool {
		i := position
		position++

		if !entry.IsObject() {
			defects = append(defects, Defect{Index: i, Reason: "entry is not an object"})
			return true
		}

		f, fieldDefects := decodeEntry(i, entry)
		defects = append(defects, fieldDefects...)
		records = append(records, f)
		return true
	})

	slugDefects, err := assignSlugs(records)
	defects = append(defects, slugDefects...)
	if err != nil {
		return nil, defects, err
	}
	return records, defects, nil
}

// assignSlugs rejects explicit slugs that repeat, then gives each record
// without a slug the fallback for its index. A fallback that is already
// taken gets a -2, -3, ... suffix, so a missing slug never fails the load.
func assignSlugs(records []domain.Facility) ([]Defect, error) {
	owner := make(map[string]int, len(records))
	for _, f := range records {
		if f.Slug == "" {
			continue
		}
		if prev, dup := owner[f.Slug]; dup {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateSlug, f.Slug, prev, f.Index)
		}
		owner[f.Slug] = f.Index
	}

	var defects []Defect
	for i := range records {
		f := &records[i]
		if f.Slug != "" {
			continue
		}
		base := domain.FallbackSlug(f.Index + 1)
		slug := base
		for n := 2; ; n++ {
			if _, taken := owner[slug]; !taken {
				break
			}
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		f.Slug = slug
		owner[slug] = f.Index
		defects = append(defects, Defect{Index: f.Index, Field: "slug", Reason: "missing, assigned " + slug})
	}
	return defects, nil
}

func decodeEntry(i int, entry gjson.Result) (domain.Facility, []Defect) {
	var defects []Defect
	text := func(keys ...string) (string, bool) {
		for _, key := range keys {
			v := entry.Get(key)
			if !v.Exists() || v.Type == gjson.Null {
				continue
			}
			if v.Type != gjson.String {
				defects = append(defects, Defect{Index: i, Field: key, Reason: "not a string"})
				return "", false
			}
			return v.Str, true
		}
		return "", false
	}

	f := domain.Facility{Index: i}
	f.Slug, _ = text("slug")
	f.Name, _ = text("name")
	f.Address, _ = text("address")
	f.Village, _ = text(villageKeys...)
	if d, ok := text(divisionKeys...); ok {
		f.Division = &d
	}

	if c := entry.Get("capacity"); c.Exists() && c.Type != gjson.Null {
		if n, ok := capacityValue(c); ok {
			f.Capacity = &n
		} else {
			defects = append(defects, Defect{Index: i, Field: "capacity", Reason: fmt.Sprintf("not a non-negative integer: %s", c.Raw)})
		}
	}

	return f, defects
}

func capacityValue(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0, false
	}
	return int(v.Num), true
}
