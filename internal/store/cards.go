package store

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"golang.org/x/net/html"
)

// cardMarkers are the attributes that identify a card when the class is
// missing.
var cardMarkers = []string{domain.AttrSlug, domain.AttrName, domain.AttrIndex}

// PageSource reads a pre-rendered listing page instead of the JSON
// collection; the records come from its facility cards.
type PageSource struct {
	Source
}

// Decode implements payloadDecoder.
func (PageSource) Decode(payload []byte) ([]domain.Facility, []Defect, error) {
	return DecodeCards(payload)
}

// FromAttributes builds a Store from card metadata already read out of the
// page, one attribute map per card in document order. Like Load it never
// returns nil.
func FromAttributes(source string, cards []map[string]string) *Store {
	start := clock.Now()
	s := &Store{source: source}
	records, defects, err := cardRecords(cards)
	s.defects = defects
	if err != nil {
		s.fail(fmt.Errorf("cards %s: %w", source, err), start)
		return s
	}
	s.records = records
	s.loadedAt = clock.Now()
	s.duration = s.loadedAt.Sub(start)
	return s
}

// DecodeCards parses a listing page and reads every facility card in
// document order. A page without cards decodes to an empty collection.
func DecodeCards(payload []byte) ([]domain.Facility, []Defect, error) {
	doc, err := html.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var cards []map[string]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isCard(n) {
			cards = append(cards, dataAttributes(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return cardRecords(cards)
}

func cardRecords(cards []map[string]string) ([]domain.Facility, []Defect, error) {
	records := make([]domain.Facility, len(cards))
	for i, attrs := range cards {
		records[i] = domain.FromAttributes(i, attrs)
	}
	defects, err := assignSlugs(records)
	if err != nil {
		return nil, defects, err
	}
	return records, defects, nil
}

func isCard(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), domain.CardClass) {
			return true
		}
		if slices.Contains(cardMarkers, a.Key) {
			return true
		}
	}
	return false
}

func dataAttributes(n *html.Node) map[string]string {
	attrs := make(map[string]string)
	for _, a := range n.Attr {
		if strings.HasPrefix(a.Key, "data-") {
			attrs[a.Key] = a.Val
		}
	}
	return attrs
}
