//go:build js && wasm

// Command web is the listing page runtime. Build with GOOS=js GOARCH=wasm and
// load it next to wasm_exec.js. The list container's data-source attribute
// selects the variant: a URL of the JSON collection, or "cards" to read the
// pre-rendered card metadata from the page itself.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"syscall/js"
	"time"

	"github.com/couchcryptid/shelter-directory/internal/binder"
	"github.com/couchcryptid/shelter-directory/internal/domain"
	"github.com/couchcryptid/shelter-directory/internal/render"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

const (
	listID     = "facility-list"
	summaryID  = "result-summary"
	searchID   = "search"
	sortID     = "sort"
	cardsValue = "cards"

	fetchTimeout = 10 * time.Second
)

var selectIDs = map[domain.Dimension]string{
	domain.DimensionVillage:  "village-filter",
	domain.DimensionDivision: "division-filter",
}

// domTarget writes renders into the page.
type domTarget struct {
	list    js.Value
	summary js.Value
}

func (t domTarget) ReplaceList(html string) { t.list.Set("innerHTML", html) }

func (t domTarget) SetSummary(text string) {
	if t.summary.Truthy() {
		t.summary.Set("textContent", text)
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	doc := js.Global().Get("document")

	list := doc.Call("getElementById", listID)
	if !list.Truthy() {
		logger.Error("list container missing", "id", listID)
		return
	}

	r := render.New(render.MatchLocale(doc.Get("documentElement").Get("lang").String()),
		render.WithBasePath(attr(list, "data-base-path")))
	s := loadStore(doc, list, logger)
	if err := s.Err(); err != nil {
		logger.Error("record store unavailable", "source", s.Source(), "error", err)
	}

	b := binder.New(s, r, domTarget{list: list, summary: doc.Call("getElementById", summaryID)}, logger)
	bindControls(doc, b)
	b.Start()

	// Callbacks stay registered for the life of the page.
	select {}
}

func loadStore(doc, list js.Value, logger *slog.Logger) *store.Store {
	source := attr(list, "data-source")
	if source == cardsValue {
		return store.FromAttributes("page cards", readCards(list))
	}

	location, err := resolve(doc.Get("baseURI").String(), source)
	if err != nil {
		return store.Failed(source, err)
	}
	logger.Debug("fetching record collection", "url", location)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	return store.Load(ctx, store.NewHTTPSource(location, fetchTimeout))
}

// readCards collects the data-* attributes of every pre-rendered card.
// Elements inside another card are not cards of their own.
func readCards(list js.Value) []map[string]string {
	nodes := list.Call("querySelectorAll", domain.CardSelector)
	cards := make([]map[string]string, 0, nodes.Length())
	for i := 0; i < nodes.Length(); i++ {
		node := nodes.Index(i)
		if parent := node.Get("parentElement"); parent.Truthy() {
			if outer := parent.Call("closest", domain.CardSelector); outer.Truthy() && list.Call("contains", outer).Bool() {
				continue
			}
		}
		attrs := node.Get("attributes")
		card := make(map[string]string, attrs.Length())
		for j := 0; j < attrs.Length(); j++ {
			a := attrs.Index(j)
			if name := a.Get("name").String(); strings.HasPrefix(name, "data-") {
				card[name] = a.Get("value").String()
			}
		}
		cards = append(cards, card)
	}
	return cards
}

func bindControls(doc js.Value, b *binder.Binder) {
	if el := doc.Call("getElementById", searchID); el.Truthy() {
		on(el, "input", func(v string) { b.Search(v) })
	}
	if el := doc.Call("getElementById", sortID); el.Truthy() {
		on(el, "change", func(v string) { b.Sort(domain.ParseSortMode(v)) })
	}
	for _, dim := range domain.Dimensions {
		el := doc.Call("getElementById", selectIDs[dim])
		if !el.Truthy() {
			continue
		}
		for _, v := range b.Options(dim) {
			opt := doc.Call("createElement", "option")
			opt.Set("value", v)
			opt.Set("textContent", v)
			el.Call("appendChild", opt)
		}
		on(el, "change", func(v string) { b.Filter(dim, v) })
	}
}

// on registers fn for event on el, passing the control's current value.
func on(el js.Value, event string, fn func(value string)) {
	el.Call("addEventListener", event, js.FuncOf(func(this js.Value, _ []js.Value) any {
		fn(this.Get("value").String())
		return nil
	}))
}

func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
