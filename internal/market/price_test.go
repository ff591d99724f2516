package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "dollar sign with decimals", input: "$45.00", want: 45.0, ok: true},
		{name: "euro sign no decimals", input: "€45", want: 45.0, ok: true},
		{name: "trailing whitespace", input: "45 ", want: 45.0, ok: true},
		{name: "pound sign", input: "£120.50", want: 120.50, ok: true},
		{name: "thousands separator", input: "$1,250", want: 1250.0, ok: true},
		{name: "dash placeholder", input: "-", ok: false},
		{name: "not available marker", input: "N/A", ok: false},
		{name: "empty string", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "non-numeric residue", input: "call us", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizePrice(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			} else {
				// a failed parse must not leak a zero that looks like a price
				assert.Zero(t, got)
			}
		})
	}
}

func TestNormalizeAndRatio(t *testing.T) {
	t.Run("both numeric", func(t *testing.T) {
		marketPrice, ratio := normalizeAndRatio("$45.00", "90")
		assert.Equal(t, "45.00", marketPrice)
		assert.Equal(t, "2.00", ratio)
	})

	t.Run("market price missing", func(t *testing.T) {
		marketPrice, ratio := normalizeAndRatio("N/A", "90")
		assert.Equal(t, "N/A", marketPrice)
		assert.Equal(t, "N/A", ratio)
	})

	t.Run("menu price missing", func(t *testing.T) {
		marketPrice, ratio := normalizeAndRatio("€45", "")
		assert.Equal(t, "45.00", marketPrice)
		assert.Equal(t, "N/A", ratio)
	})

	t.Run("market price zero never divides", func(t *testing.T) {
		marketPrice, ratio := normalizeAndRatio("0", "90")
		assert.Equal(t, "0.00", marketPrice)
		assert.Equal(t, "N/A", ratio)
	})
}

func TestBuildQuery(t *testing.T) {
	t.Run("all fields empty yields well-formed query", func(t *testing.T) {
		got := BuildQuery(wineRecordAllEmpty())
		assert.NotEmpty(t, got)
		// six blank placeholders joined by spaces
		assert.Equal(t, "           ", got)
	})
}
