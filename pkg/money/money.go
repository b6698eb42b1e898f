// Package money formats so'm amounts for receipts and API responses.
//
// Amounts are carried as int64 whole so'm everywhere in the terminal. The
// currency has no minor units on receipts, so there is no decimal point and
// no rounding beyond what the cart arithmetic already did.
package money

import "strconv"

// Format renders an amount with space-separated thousands: 1234567 -> "1 234 567".
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n > 3 {
		groups := (n - 1) / 3
		buf := make([]byte, 0, n+groups)
		lead := n - groups*3
		buf = append(buf, s[:lead]...)
		for i := lead; i < n; i += 3 {
			buf = append(buf, ' ')
			buf = append(buf, s[i:i+3]...)
		}
		s = string(buf)
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatSum renders an amount with the currency suffix: "27 000 so'm".
func FormatSum(amount int64) string {
	return Format(amount) + " so'm"
}
