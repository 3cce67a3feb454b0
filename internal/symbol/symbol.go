package symbol

import "fmt"

// Symbol is one of the supported tickers. The zero value is not a valid symbol.
type Symbol int

const (
	ADA Symbol = iota + 1
	BTC
	DOGE
	DOT
	ETH
	LTC
	MATIC
	SOL
)

// Fallback is what New returns for codes outside the registry.
const Fallback = BTC

type info struct {
	code string
	name string
}

var registry = map[Symbol]info{
	ADA:   {code: "ADA", name: "cardano"},
	BTC:   {code: "BTC", name: "bitcoin"},
	DOGE:  {code: "DOGE", name: "dogecoin"},
	DOT:   {code: "DOT", name: "polkadot"},
	ETH:   {code: "ETH", name: "ethereum"},
	LTC:   {code: "LTC", name: "litecoin"},
	MATIC: {code: "MATIC", name: "polygon"},
	SOL:   {code: "SOL", name: "solana"},
}

var byCode = func() map[string]Symbol {
	m := make(map[string]Symbol, len(registry))
	for s, i := range registry {
		m[i.code] = s
	}
	return m
}()

// order is the request order; callers must not rely on it for output.
var order = []Symbol{ADA, BTC, ETH, DOT, DOGE, LTC, MATIC, SOL}

// All returns the supported symbols in a stable order.
func All() []Symbol {
	out := make([]Symbol, len(order))
	copy(out, order)
	return out
}

// New maps an API base code to a Symbol. Unknown codes resolve to Fallback.
func New(code string) Symbol {
	if s, ok := byCode[code]; ok {
		return s
	}
	return Fallback
}

// Lookup is the strict form of New.
func Lookup(code string) (Symbol, bool) {
	s, ok := byCode[code]
	return s, ok
}

// Code is the short ticker, e.g. "BTC".
func (s Symbol) Code() string { return registry[s].code }

// Name is the long name used in links, e.g. "bitcoin".
func (s Symbol) Name() string { return registry[s].name }

// ToString yields the long name when isName is set, the code otherwise.
func (s Symbol) ToString(isName bool) string {
	if isName {
		return s.Name()
	}
	return s.Code()
}

func (s Symbol) String() string { return s.Code() }

// Index is the position of s in All, or -1.
func (s Symbol) Index() int {
	for i, o := range order {
		if o == s {
			return i
		}
	}
	return -1
}

// MarshalText encodes s as its code so quotes serialize as "BTC", not 2.
func (s Symbol) MarshalText() ([]byte, error) {
	if _, ok := registry[s]; !ok {
		return nil, fmt.Errorf("symbol: invalid value %d", int(s))
	}
	return []byte(s.Code()), nil
}

// UnmarshalText is strict: unknown codes are an error, not Fallback.
func (s *Symbol) UnmarshalText(b []byte) error {
	v, ok := Lookup(string(b))
	if !ok {
		return fmt.Errorf("symbol: unknown code %q", string(b))
	}
	*s = v
	return nil
}
