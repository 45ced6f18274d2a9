package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
)

// FormatName joins first and last name, falling back to a neutral placeholder
// when both are blank so templates never render an empty salutation.
func FormatName(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return "Customer"
	}
	return name
}

// FormatCurrency renders "<CODE> <grouped amount>". The currency code is
// ISO-4217 validated where possible and uppercased otherwise; an unparsable
// amount falls back to "<CODE> <rawValue>" without failing.
func FormatCurrency(raw, code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if unit, err := currency.ParseISO(code); err == nil {
		upper = unit.String()
	}
	amt, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return strings.TrimSpace(upper + " " + raw)
	}
	return upper + " " + humanize.CommafWithDigits(amt, 2)
}

// FormatTenure turns a stored term unit like "interest_free_months" into
// display text: "12 interest free months".
func FormatTenure(n int, unit string) string {
	return fmt.Sprintf("%d %s", n, strings.ReplaceAll(unit, "_", " "))
}
