package currency

// countryCurrency maps ISO 3166 alpha-2 codes and English country names to
// currency codes. Locators may report either form.
var countryCurrency = map[string]string{
	// Africa
	"GH": "GHS", "Ghana": "GHS",
	"NG": "NGN", "Nigeria": "NGN",
	"KE": "KES", "Kenya": "KES",
	"ZA": "ZAR", "South Africa": "ZAR",
	"EG": "EGP", "Egypt": "EGP",
	"MA": "MAD", "Morocco": "MAD",
	"TN": "TND", "Tunisia": "TND",
	"DZ": "DZD", "Algeria": "DZD",
	"ET": "ETB", "Ethiopia": "ETB",
	"UG": "UGX", "Uganda": "UGX",
	"TZ": "TZS", "Tanzania": "TZS",
	"RW": "RWF", "Rwanda": "RWF",
	"SN": "XOF", "Senegal": "XOF",
	"BF": "XOF", "Burkina Faso": "XOF",
	"ML": "XOF", "Mali": "XOF",
	"NE": "XOF", "Niger": "XOF",
	"CI": "XOF", "Ivory Coast": "XOF",
	"GW": "XOF", "Guinea-Bissau": "XOF",
	"GN": "XOF", "Guinea": "XOF",
	"TG": "XOF", "Togo": "XOF",
	"BJ": "XOF", "Benin": "XOF",
	"CM": "XAF", "Cameroon": "XAF",
	"CF": "XAF", "Central African Republic": "XAF",
	"TD": "XAF", "Chad": "XAF",
	"CG": "XAF", "Republic of the Congo": "XAF",
	"GQ": "XAF", "Equatorial Guinea": "XAF",
	"GA": "XAF", "Gabon": "XAF",

	// North America
	"US": "USD", "United States": "USD",
	"CA": "CAD", "Canada": "CAD",
	"MX": "MXN", "Mexico": "MXN",

	// Europe
	"GB": "GBP", "United Kingdom": "GBP",
	"DE": "EUR", "Germany": "EUR",
	"FR": "EUR", "France": "EUR",
	"IT": "EUR", "Italy": "EUR",
	"ES": "EUR", "Spain": "EUR",
	"NL": "EUR", "Netherlands": "EUR",
	"BE": "EUR", "Belgium": "EUR",
	"AT": "EUR", "Austria": "EUR",
	"PT": "EUR", "Portugal": "EUR",
	"FI": "EUR", "Finland": "EUR",
	"IE": "EUR", "Ireland": "EUR",
	"LU": "EUR", "Luxembourg": "EUR",
	"GR": "EUR", "Greece": "EUR",
	"CY": "EUR", "Cyprus": "EUR",
	"MT": "EUR", "Malta": "EUR",
	"SI": "EUR", "Slovenia": "EUR",
	"SK": "EUR", "Slovakia": "EUR",
	"EE": "EUR", "Estonia": "EUR",
	"LV": "EUR", "Latvia": "EUR",
	"LT": "EUR", "Lithuania": "EUR",

	// Asia
	"JP": "JPY", "Japan": "JPY",
	"IN": "INR", "India": "INR",

	// Oceania
	"AU": "AUD", "Australia": "AUD",

	// South America
	"BR": "BRL", "Brazil": "BRL",
}

// ForCountry returns the currency used in country, falling back to USD.
// The bool reports whether the country was mapped.
func ForCountry(country string) (string, bool) {
	if code, ok := countryCurrency[country]; ok {
		return code, true
	}
	return Base, false
}
