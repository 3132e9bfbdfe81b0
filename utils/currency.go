package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyIDR memformat nilai ke format Rupiah untuk tampilan.
// Contoh: 15000.50 -> "Rp 15.000,50"
func FormatCurrencyIDR(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	// Bulatkan dulu ke 2 desimal supaya 0.005 tidak hilang
	cents := int64(math.Round(amount * 100))
	integer := cents / 100
	decimal := cents % 100

	// Format bagian integer dengan pemisah ribuan
	integerStr := fmt.Sprintf("%d", integer)
	var groups []string
	for len(integerStr) > 3 {
		groups = append([]string{integerStr[len(integerStr)-3:]}, groups...)
		integerStr = integerStr[:len(integerStr)-3]
	}
	groups = append([]string{integerStr}, groups...)

	result := fmt.Sprintf("Rp %s", strings.Join(groups, "."))
	if decimal > 0 {
		result = fmt.Sprintf("%s,%02d", result, decimal)
	}
	if negative {
		result = "-" + result
	}
	return result
}
