package render

import (
	"bytes"
	"fmt"

	"github.com/couchcryptid/shelter-directory/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Target is the surface the renderer writes to: a list container and a
// summary line. Both calls replace whatever was there before.
type Target interface {
	ReplaceList(html string)
	SetSummary(text string)
}

// Labels are the localized static strings of a card.
type Labels struct {
	Capacity string
	Division string
	Details  string
	Map      string
}

// Card is the display projection of one facility.
type Card struct {
	Slug          string
	Badge         string // village
	Name          string
	Address       string
	Capacity      string
	CapacityKnown bool
	Division      string
	DivisionKnown bool
	DetailURL     string
	MapURL        string
}

// Page is everything one render shows.
type Page struct {
	Summary     string
	Cards       []Card
	Empty       bool
	Placeholder string
	Labels      Labels
}

// Renderer projects ordered facilities into markup for one locale. It is
// not safe for concurrent use; each page owns one.
type Renderer struct {
	tag      language.Tag
	printer  *message.Printer
	labels   Labels
	basePath string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBasePath prefixes detail links, e.g. "../" for pages one level down.
func WithBasePath(prefix string) Option {
	return func(r *Renderer) { r.basePath = prefix }
}

// New creates a Renderer for tag.
func New(tag language.Tag, opts ...Option) *Renderer {
	p := newPrinter(tag)
	r := &Renderer{
		tag:     tag,
		printer: p,
		labels: Labels{
			Capacity: p.Sprintf(msgLabelCap),
			Division: p.Sprintf(msgLabelDiv),
			Details:  p.Sprintf(msgLabelDetails),
			Map:      p.Sprintf(msgLabelMap),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locale is the renderer's language.
func (r *Renderer) Locale() language.Tag { return r.tag }

// Summary formats "showing K of N facilities".
func (r *Renderer) Summary(shown, total int) string {
	return r.printer.Sprintf(msgSummary, shown, total)
}

// FormatCapacity renders a capacity with thousands grouping, or the
// "not provided" label when absent.
func (r *Renderer) FormatCapacity(capacity *int) string {
	if capacity == nil {
		return r.printer.Sprintf(msgNotProvided)
	}
	return r.printer.Sprintf(msgCapacity, *capacity)
}

// FormatDivision renders the division or the "not specified" label.
func (r *Renderer) FormatDivision(division *string) string {
	if division == nil {
		return r.printer.Sprintf(msgNotSpecified)
	}
	return *division
}

// View projects records, already filtered and ordered, into a Page.
func (r *Renderer) View(records []domain.Facility, total int) Page {
	page := Page{
		Summary: r.Summary(len(records), total),
		Cards:   make([]Card, 0, len(records)),
		Labels:  r.labels,
	}
	for _, f := range records {
		page.Cards = append(page.Cards, r.card(f))
	}
	if len(page.Cards) == 0 {
		page.Empty = true
		page.Placeholder = r.printer.Sprintf(msgNoResults)
	}
	return page
}

func (r *Renderer) card(f domain.Facility) Card {
	return Card{
		Slug:          f.Slug,
		Badge:         f.Village,
		Name:          f.Name,
		Address:       f.Address,
		Capacity:      r.FormatCapacity(f.Capacity),
		CapacityKnown: f.Capacity != nil,
		Division:      r.FormatDivision(f.Division),
		DivisionKnown: f.Division != nil,
		DetailURL:     r.basePath + domain.DetailPath(f.Slug),
		MapURL:        domain.MapURL(f.Address),
	}
}

// HTML executes the list template for page.
func (r *Renderer) HTML(page Page) (string, error) {
	var buf bytes.Buffer
	if err := listTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("execute list template: %w", err)
	}
	return buf.String(), nil
}

// Render replaces the target's list with one card per record, in order, or
// the no-results placeholder, and updates the summary.
func (r *Renderer) Render(t Target, records []domain.Facility, total int) (Page, error) {
	page := r.View(records, total)
	markup, err := r.HTML(page)
	if err != nil {
		return page, err
	}
	t.ReplaceList(markup)
	t.SetSummary(page.Summary)
	return page, nil
}

// RenderUnavailable shows the load-failure message with the error detail.
func (r *Renderer) RenderUnavailable(t Target, cause error) error {
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	var buf bytes.Buffer
	err := unavailableTemplate.Execute(&buf, struct{ Message, Detail string }{
		Message: r.printer.Sprintf(msgUnavailable),
		Detail:  detail,
	})
	if err != nil {
		return fmt.Errorf("execute unavailable template: %w", err)
	}
	t.ReplaceList(buf.String())
	t.SetSummary(r.printer.Sprintf(msgSummaryNone))
	return nil
}
