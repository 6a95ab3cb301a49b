package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as "Rp 61.050": rounded to whole
// rupiah, thousands separated by dots, no decimal part. Rounding
// happens only here; computed totals keep full precision.
func FormatRupiah(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "Rp " + groupThousands(strconv.FormatInt(n, 10))
}

// FormatRupiahFloat is FormatRupiah for amounts already on the wire as
// JSON numbers, such as total_harga on fetched orders.
func FormatRupiahFloat(amount float64) string {
	return FormatRupiah(decimal.NewFromFloat(amount))
}

func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
