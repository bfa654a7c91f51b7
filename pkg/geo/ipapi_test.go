package geo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/geo"
)

func newIPAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /8.8.8.8/json/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"8.8.8.8","country_code":"US","country_name":"United States"}`))
	})
	mux.HandleFunc("GET /41.66.200.1/json/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"41.66.200.1","country_code":"GH"}`))
	})
	mux.HandleFunc("GET /1.1.1.1/json/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
	})
	mux.HandleFunc("GET /9.9.9.9/json/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ip":"9.9.9.9"}`))
	})
	mux.HandleFunc("GET /json/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"country_code":"KE"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestIPAPILocate(t *testing.T) {
	t.Parallel()

	srv := newIPAPIServer(t)
	locator := geo.NewIPAPI(geo.IPAPIConfig{Endpoint: srv.URL + "/"}, srv.Client())
	ctx := context.Background()

	country, err := locator.Locate(ctx, "41.66.200.1")
	require.NoError(t, err)
	assert.Equal(t, "GH", country)

	country, err = locator.Locate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "KE", country)

	_, err = locator.Locate(ctx, "1.1.1.1")
	require.ErrorIs(t, err, geo.ErrLookupFailed)
	assert.Contains(t, err.Error(), "RateLimited")

	_, err = locator.Locate(ctx, "9.9.9.9")
	require.ErrorIs(t, err, geo.ErrCountryNotPresent)

	_, err = locator.Locate(ctx, "4.4.4.4")
	require.ErrorIs(t, err, geo.ErrLookupFailed)
}

func TestIPAPIRequestLocator(t *testing.T) {
	t.Parallel()

	srv := newIPAPIServer(t)
	locator := geo.NewIPAPI(geo.IPAPIConfig{Endpoint: srv.URL}, srv.Client())
	ctx := context.Background()

	t.Run("cdn header wins", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("CF-IPCountry", "NG")
		r.Header.Set("X-Real-IP", "8.8.8.8")

		country, err := locator.RequestLocator(r)(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NG", country)
	})

	t.Run("looks up client ip", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "8.8.8.8")

		country, err := locator.RequestLocator(r)(ctx)
		require.NoError(t, err)
		assert.Equal(t, "US", country)
	})

	t.Run("private address is not looked up", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"

		_, err := locator.RequestLocator(r)(ctx)
		require.ErrorIs(t, err, geo.ErrLookupFailed)
	})
}
