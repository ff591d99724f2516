package market

import (
	"strconv"
	"strings"

	"github.com/mattgrange/winescout/constants"
)

// currencySymbols is the fixed set stripped before numeric conversion. No
// rate conversion happens here: the ratio is only meaningful when menu and
// market prices share a currency.
var currencySymbols = []string{"$", "€", "£", "¥", "₩", "₹"}

// NormalizePrice strips currency symbols and whitespace from a scraped price
// string and converts it. Non-numeric residue ("N/A", "-", "") reports false
// rather than a zero that could masquerade as a real price.
func NormalizePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == constants.NotAvailable || s == "-" {
		return 0, false
	}
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatPrice renders a numeric price or ratio for the output table.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
