package currency

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	iso "golang.org/x/text/currency"
)

// Base is the currency all prices and rates are expressed in.
const Base = "USD"

// Currency describes a supported display currency.
// Rate is the number of units of this currency per US dollar.
type Currency struct {
	Code   string          `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Flag   string          `json:"flag"`
	Rate   decimal.Decimal `json:"rate"`
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// currencies is kept in display order.
var currencies = []Currency{
	{"USD", "$", "US Dollar", "🇺🇸", rate("1")},
	{"GHS", "GH¢", "Ghanaian Cedi", "🇬🇭", rate("12.5")},
	{"NGN", "₦", "Nigerian Naira", "🇳🇬", rate("750")},
	{"KES", "KSh", "Kenyan Shilling", "🇰🇪", rate("150")},
	{"ZAR", "R", "South African Rand", "🇿🇦", rate("18.5")},
	{"EGP", "E£", "Egyptian Pound", "🇪🇬", rate("30.8")},
	{"MAD", "MAD", "Moroccan Dirham", "🇲🇦", rate("10.2")},
	{"TND", "TND", "Tunisian Dinar", "🇹🇳", rate("3.1")},
	{"DZD", "DZD", "Algerian Dinar", "🇩🇿", rate("134.5")},
	{"ETB", "ETB", "Ethiopian Birr", "🇪🇹", rate("55")},
	{"UGX", "UGX", "Ugandan Shilling", "🇺🇬", rate("3700")},
	{"TZS", "TZS", "Tanzanian Shilling", "🇹🇿", rate("2500")},
	{"RWF", "RWF", "Rwandan Franc", "🇷🇼", rate("1200")},
	{"XOF", "XOF", "West African CFA Franc", "🇸🇳", rate("600")},
	{"XAF", "XAF", "Central African CFA Franc", "🇨🇲", rate("600")},
	{"EUR", "€", "Euro", "🇪🇺", rate("0.92")},
	{"GBP", "£", "British Pound", "🇬🇧", rate("0.79")},
	{"CAD", "C$", "Canadian Dollar", "🇨🇦", rate("1.35")},
	{"AUD", "A$", "Australian Dollar", "🇦🇺", rate("1.52")},
	{"JPY", "¥", "Japanese Yen", "🇯🇵", rate("150")},
	{"INR", "₹", "Indian Rupee", "🇮🇳", rate("83")},
	{"BRL", "R$", "Brazilian Real", "🇧🇷", rate("5")},
	{"MXN", "$", "Mexican Peso", "🇲🇽", rate("17")},
}

var byCode = func() map[string]Currency {
	m := make(map[string]Currency, len(currencies))
	for _, c := range currencies {
		m[c.Code] = c
	}
	return m
}()

// Codes priced without minor units. KRW has no table entry but is still
// treated as zero-decimal if one is added.
var zeroDecimal = []string{"JPY", "KRW", "UGX", "TZS", "RWF"}

// Available returns every supported currency in display order.
func Available() []Currency {
	return slices.Clone(currencies)
}

// Lookup returns the currency for an ISO 4217 code.
func Lookup(code string) (Currency, bool) {
	c, ok := byCode[code]
	return c, ok
}

// ParseCode normalizes code and checks that it is a supported ISO 4217 code.
func ParseCode(code string) (string, error) {
	unit, err := iso.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", ErrUnsupportedCurrency
	}
	normalized := unit.String()
	if _, ok := byCode[normalized]; !ok {
		return "", ErrUnsupportedCurrency
	}
	return normalized, nil
}

func isZeroDecimal(code string) bool {
	return slices.Contains(zeroDecimal, code)
}
