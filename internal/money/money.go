// Package money formats rupiah amounts for display.
package money

import "github.com/dustin/go-humanize"

// Rupiah renders n with dot thousands separators, e.g. "Rp 2.999.900".
func Rupiah(n int64) string {
	if n < 0 {
		return "-Rp " + humanize.FormatInteger("#.###,", int(-n))
	}
	return "Rp " + humanize.FormatInteger("#.###,", int(n))
}
