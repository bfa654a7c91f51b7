package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultIPAPIEndpoint is the public ipapi.co service.
const DefaultIPAPIEndpoint = "https://ipapi.co"

// Locator finds the ISO country code of an IP address.
type Locator interface {
	Locate(ctx context.Context, ip string) (string, error)
}

// IPAPIConfig configures the ipapi.co locator and its lookup cache.
type IPAPIConfig struct {
	Endpoint  string        `env:"GEO_IPAPI_ENDPOINT" envDefault:"https://ipapi.co"`
	Timeout   time.Duration `env:"GEO_IPAPI_TIMEOUT" envDefault:"3s"`
	CacheSize int           `env:"GEO_CACHE_SIZE" envDefault:"10000"`
	CacheTTL  time.Duration `env:"GEO_CACHE_TTL" envDefault:"24h"`
}

// IPAPI looks up the country of an IP address with the ipapi.co JSON API.
type IPAPI struct {
	endpoint string
	client   *http.Client
}

// NewIPAPI returns a locator. A nil client gets a pooled client with cfg.Timeout.
func NewIPAPI(cfg IPAPIConfig, client *http.Client) *IPAPI {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		if cfg.Timeout > 0 {
			client.Timeout = cfg.Timeout
		}
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultIPAPIEndpoint
	}
	return &IPAPI{endpoint: endpoint, client: client}
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Locate returns the ISO country code for ip. An empty ip asks the service
// about the caller's own address.
func (l *IPAPI) Locate(ctx context.Context, ip string) (string, error) {
	u := l.endpoint + "/json/"
	if ip != "" {
		u = l.endpoint + "/" + url.PathEscape(ip) + "/json/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Join(ErrLookupFailed, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Join(ErrLookupFailed, err)
	}
	if body.Error {
		return "", errors.Join(ErrLookupFailed, errors.New(body.Reason))
	}
	if body.CountryCode == "" {
		return "", ErrCountryNotPresent
	}
	return body.CountryCode, nil
}

// RequestLocator resolves the country of the visitor behind r: the CDN header
// when present, otherwise an ipapi.co lookup of the client IP.
func (l *IPAPI) RequestLocator(r *http.Request) func(ctx context.Context) (string, error) {
	return requestLocator(l, r)
}

func requestLocator(l Locator, r *http.Request) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if country, ok := HeaderCountry(r); ok {
			return country, nil
		}
		ip := ClientIP(r)
		if ip == "" {
			return "", ErrNoClientIP
		}
		if !IsPublic(ip) {
			return "", errors.Join(ErrLookupFailed, fmt.Errorf("address %s is not public", ip))
		}
		return l.Locate(ctx, ip)
	}
}
