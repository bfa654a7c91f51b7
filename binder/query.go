package binder

import "net/http"

// Query binds fields tagged `query:"name"`. Slice fields accept repeated
// parameters and comma-separated values.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		query := r.URL.Query()
		return bindFields(v, "query", ErrInvalidQuery, func(name string) []string {
			return query[name]
		})
	}
}
