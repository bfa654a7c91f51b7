package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/handler"
)

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  bool
	}{
		{"plain", func(r *http.Request) {}, false},
		{"accept header", func(r *http.Request) { r.Header.Set("Accept", "text/event-stream") }, true},
		{"query param", func(r *http.Request) { r.URL.RawQuery = "datastar=%7B%7D" }, true},
		{"content type", func(r *http.Request) { r.Header.Set("Content-Type", "application/x-datastar") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.WantsJSON(r))

	r.Header.Set("Accept", "text/html, application/json;q=0.9")
	assert.True(t, handler.WantsJSON(r))

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.True(t, handler.WantsJSON(r))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular request", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/app/subscriptions").Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/app/subscriptions", rec.Header().Get("Location"))
	})

	t.Run("custom code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectWithCode("/x", http.StatusFound).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("datastar request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/app/subscriptions").Render(rec, r))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "/app/subscriptions")
		assert.Empty(t, rec.Header().Get("Location"))
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="panel">hello</div>`)
		return err
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Templ(component).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `<div id="panel">hello</div>`, rec.Body.String())
	})

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplWithStatus(component, http.StatusPaymentRequired).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("datastar patch", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Templ(component).Render(rec, r))

		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), `<div id="panel">hello</div>`)
	})
}
