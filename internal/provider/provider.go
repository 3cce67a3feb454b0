package provider

import (
	"context"

	"coinprices/internal/symbol"
)

// Quote is a successfully fetched price for one symbol.
// Price is already formatted, e.g. "$64,123.45".
type Quote struct {
	Symbol symbol.Symbol `json:"symbol"`
	Price  string        `json:"price"`
}

// Outcome is the result of fetching one symbol: either a Quote or a failure
// reason. Requested is the symbol the fetch was issued for.
type Outcome struct {
	Requested symbol.Symbol
	Quote     Quote
	Reason    string
	ok        bool
}

func Success(requested symbol.Symbol, q Quote) Outcome {
	return Outcome{Requested: requested, Quote: q, ok: true}
}

func Failure(requested symbol.Symbol, reason string) Outcome {
	return Outcome{Requested: requested, Reason: reason}
}

// OK reports whether the outcome carries a Quote.
func (o Outcome) OK() bool { return o.ok }

// Fetcher retrieves the current price of a single symbol. Implementations
// report every failure through the Outcome; they must not panic on network
// or decoding errors.
type Fetcher interface {
	Fetch(ctx context.Context, s symbol.Symbol) Outcome
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, s symbol.Symbol) Outcome

func (f FetcherFunc) Fetch(ctx context.Context, s symbol.Symbol) Outcome { return f(ctx, s) }
