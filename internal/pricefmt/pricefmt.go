// Package pricefmt renders decimal price strings as grouped dollar amounts.
//
// Prices stay strings end to end; nothing here parses them into floats.
package pricefmt

import "strings"

const (
	currencyMark = "$"
	separator    = ','
	groupSize    = 3
)

// Price is a decimal string split at its first '.'.
type Price struct {
	Int  string
	Frac string
}

// Degraded is what malformed input collapses to.
var Degraded = Price{Int: "0", Frac: "00"}

// Parse splits raw on the first decimal point. ok is false when raw has no
// decimal point, in which case Degraded is returned.
func Parse(raw string) (p Price, ok bool) {
	i, f, found := strings.Cut(raw, ".")
	if !found {
		return Degraded, false
	}
	return Price{Int: i, Frac: f}, true
}

// Format turns "1234.56" into "$1,234.56". It never fails: input without a
// decimal point renders as "$0.00". The fractional part is copied verbatim.
func Format(raw string) string {
	p, _ := Parse(raw)
	return p.String()
}

func (p Price) String() string {
	return currencyMark + Group(p.Int) + "." + p.Frac
}

// Group inserts a separator every three characters counting from the right.
// Integer parts shorter than four characters are returned unchanged. A leading
// sign is kept in front of the first group. Grouping counts runes, so
// multi-byte input is never split.
func Group(digits string) string {
	r := []rune(digits)
	if len(r) < groupSize+1 {
		return digits
	}
	sign := ""
	if r[0] == '-' || r[0] == '+' {
		sign, r = string(r[0]), r[1:]
	}
	n := len(r)
	var b strings.Builder
	b.Grow(len(digits) + n/groupSize)
	b.WriteString(sign)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%groupSize == 0 {
			b.WriteByte(separator)
		}
		b.WriteRune(r[i])
	}
	return b.String()
}
