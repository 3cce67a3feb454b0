package pricefmt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"0.00", "$0.00"},
		{"1.23", "$1.23"},
		{"12.34", "$12.34"},
		{"123.45", "$123.45"},
		{"1234.56", "$1,234.56"},
		{"12345.67", "$12,345.67"},
		{"123456.78", "$123,456.78"},
		{"1000000.00", "$1,000,000.00"},
		{"10000000.00", "$10,000,000.00"},
		{"100000000.00", "$100,000,000.00"},
		{"12345678.90", "$12,345,678.90"},
		// no decimal point is treated as unparseable
		{"10000000000", "$0.00"},
		{"", "$0.00"},
		{"abc", "$0.00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Format(tc.in), "Format(%q)", tc.in)
	}
}

func TestFormat_FractionVerbatim(t *testing.T) {
	t.Parallel()

	// not rounded, not padded, not validated
	require.Equal(t, "$64,123.4567", Format("64123.4567"))
	require.Equal(t, "$5.1", Format("5.1"))
	require.Equal(t, "$5.", Format("5."))
	require.Equal(t, "$1,000.x9", Format("1000.x9"))
	// only the first '.' splits
	require.Equal(t, "$1.2.3", Format("1.2.3"))
}

func TestFormat_LeadingZerosAndSign(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$0,001,234.00", Format("0001234.00"))
	require.Equal(t, "$0,123.00", Format("0123.00"))
	require.Equal(t, "$-123.45", Format("-123.45"))
	require.Equal(t, "$-1,234.50", Format("-1234.50"))
	require.Equal(t, "$.50", Format(".50"))
}

func TestFormat_MultiByteIntegerPart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"١٢٣٤.00", "$١,٢٣٤.00"},
		{"12€4.00", "$1,2€4.00"},
		// three runes, nine bytes: below the grouping threshold
		{"€€€.5", "$€€€.5"},
		{"-١٢٣٤٥.1", "$-١٢,٣٤٥.1"},
	}
	for _, tc := range cases {
		got := Format(tc.in)
		require.True(t, utf8.ValidString(got), "Format(%q) = %q", tc.in, got)
		require.Equal(t, tc.want, got, "Format(%q)", tc.in)
	}
}

func TestGroup_NoLeadingSeparator(t *testing.T) {
	t.Parallel()

	digits := ""
	for n := 1; n <= 18; n++ {
		digits += "9"
		got := Group(digits)
		require.False(t, strings.HasPrefix(got, ","), "leading separator in %q", got)
		require.Equal(t, digits, strings.ReplaceAll(got, ",", ""))
		groups := strings.Split(got, ",")
		for i, g := range groups {
			if i == 0 {
				require.LessOrEqual(t, len(g), 3)
				require.NotEmpty(t, g)
				continue
			}
			require.Len(t, g, 3, "group %d of %q", i, got)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	p, ok := Parse("42.10")
	require.True(t, ok)
	require.Equal(t, Price{Int: "42", Frac: "10"}, p)

	p, ok = Parse("42")
	require.False(t, ok)
	require.Equal(t, Degraded, p)
}
