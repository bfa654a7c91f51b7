package geo

import (
	"net/http"
	"strings"
)

// HeaderCountry returns the ISO country code set by the CDN in CF-IPCountry.
// Cloudflare's "XX" (unknown) and "T1" (Tor) markers are ignored.
func HeaderCountry(r *http.Request) (string, bool) {
	country := strings.ToUpper(strings.TrimSpace(r.Header.Get("CF-IPCountry")))
	if len(country) != 2 || country == "XX" || country == "T1" {
		return "", false
	}
	return country, true
}
