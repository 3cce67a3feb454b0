// Package launcher turns quotes into launcher script-filter items.
package launcher

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"coinprices/internal/provider"
)

// DefaultLinkBase is prefixed to a symbol's long name to build the item URL.
const DefaultLinkBase = "https://coinbase.com/price"

// Item is one row in the launcher's result list.
type Item struct {
	Title string `json:"title"`
	Arg   string `json:"arg"`
}

type output struct {
	Items []Item `json:"items"`
}

// NormalizeQuery trims and upper-cases a raw user query.
func NormalizeQuery(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Filter keeps quotes whose code contains query. Both sides are upper-cased,
// so matching is case-insensitive. An empty query keeps everything.
func Filter(quotes []provider.Quote, query string) []provider.Quote {
	query = NormalizeQuery(query)
	out := make([]provider.Quote, 0, len(quotes))
	for _, q := range quotes {
		if strings.Contains(strings.ToUpper(q.Symbol.Code()), query) {
			out = append(out, q)
		}
	}
	return out
}

// NewItem builds "<CODE> <price>" with a link to the symbol's price page.
func NewItem(q provider.Quote, linkBase string) Item {
	if linkBase == "" {
		linkBase = DefaultLinkBase
	}
	return Item{
		Title: fmt.Sprintf("%s %s", q.Symbol.ToString(false), q.Price),
		Arg:   strings.TrimRight(linkBase, "/") + "/" + q.Symbol.ToString(true),
	}
}

func Items(quotes []provider.Quote, linkBase string) []Item {
	items := make([]Item, 0, len(quotes))
	for _, q := range quotes {
		items = append(items, NewItem(q, linkBase))
	}
	return items
}

// Write emits items as script-filter JSON: {"items":[{"title":...,"arg":...}]}.
func Write(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(output{Items: items}); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return nil
}
