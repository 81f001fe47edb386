package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/couchcryptid/shelter-directory/internal/domain"
)

// Source supplies a serialized record collection.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// payloadDecoder is implemented by sources whose payload is not the JSON
// collection.
type payloadDecoder interface {
	Decode(payload []byte) ([]domain.Facility, []Defect, error)
}

// Store is the read-only record collection for one page load. A Store that
// failed to load is empty and reports the cause through Err.
type Store struct {
	records  []domain.Facility
	defects  []Defect
	err      error
	source   string
	loadedAt time.Time
	duration time.Duration
}

// Load fetches and decodes the collection from src exactly once. It never
// returns nil; on failure the returned Store is empty and Err is set. No
// partial record set is kept.
func Load(ctx context.Context, src Source) *Store {
	start := clock.Now()
	s := &Store{source: src.String()}

	payload, err := src.Fetch(ctx)
	if err != nil {
		s.fail(fmt.Errorf("fetch %s: %w", src, err), start)
		return s
	}

	decode := Decode
	if d, ok := src.(payloadDecoder); ok {
		decode = d.Decode
	}
	records, defects, err := decode(payload)
	s.defects = defects
	if err != nil {
		s.fail(fmt.Errorf("decode %s: %w", src, err), start)
		return s
	}

	s.records = records
	s.loadedAt = clock.Now()
	s.duration = s.loadedAt.Sub(start)
	return s
}

// New builds a Store directly from records, validating slug uniqueness.
func New(source string, records []domain.Facility) (*Store, error) {
	seen := make(map[string]struct{}, len(records))
	for _, f := range records {
		if _, dup := seen[f.Slug]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, f.Slug)
		}
		seen[f.Slug] = struct{}{}
	}
	return &Store{
		records:  slices.Clone(records),
		source:   source,
		loadedAt: clock.Now(),
	}, nil
}

// Failed returns an empty Store in the load-failure state.
func Failed(source string, err error) *Store {
	s := &Store{source: source}
	s.fail(err, clock.Now())
	return s
}

func (s *Store) fail(err error, start time.Time) {
	s.records = nil
	s.err = err
	s.loadedAt = clock.Now()
	s.duration = s.loadedAt.Sub(start)
}

// All returns a copy of every record in source order.
func (s *Store) All() []domain.Facility { return slices.Clone(s.records) }

// Len is the total record count N.
func (s *Store) Len() int { return len(s.records) }

// Err reports the load failure, if any.
func (s *Store) Err() error { return s.err }

// Defects lists tolerated per-field problems found while decoding.
func (s *Store) Defects() []Defect { return slices.Clone(s.defects) }

// Source names where the records came from.
func (s *Store) Source() string { return s.source }

// LoadedAt is when the load finished (successfully or not).
func (s *Store) LoadedAt() time.Time { return s.loadedAt }

// LoadDuration is how long the fetch and decode took.
func (s *Store) LoadDuration() time.Duration { return s.duration }

// Lookup finds a record by slug.
func (s *Store) Lookup(slug string) (domain.Facility, bool) {
	for _, f := range s.records {
		if f.Slug == slug {
			return f, true
		}
	}
	return domain.Facility{}, false
}

// CheckReadiness returns nil once the collection has loaded, or the load error.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.err != nil {
		return s.err
	}
	if s.loadedAt.IsZero() {
		return errors.New("record store has not loaded")
	}
	return nil
}

// DefectCount is the number of tolerated per-field defects.
func (s *Store) DefectCount() int { return len(s.defects) }

// LoadSeconds is LoadDuration in seconds.
func (s *Store) LoadSeconds() float64 { return s.duration.Seconds() }
