package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (r *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(r.status)
	return json.NewEncoder(w).Encode(r.body)
}

// JSONOption customizes a JSON response.
type JSONOption func(*jsonResponse)

// WithJSONStatus sets the HTTP status code.
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta attaches metadata to the envelope.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v as the data of a 200 response.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err as an error envelope. The status comes from an
// HTTPError in the chain, 500 otherwise.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}
	r.body.Error = errorToDetail(err, &r.status)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// errorToDetail maps err to an ErrorDetail and sets status.
// Internal messages are not exposed for 5xx errors.
func errorToDetail(err error, status *int) *ErrorDetail {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = ErrInternalServerError
	}
	*status = httpErr.Status

	message := http.StatusText(httpErr.Status)
	if httpErr.Status < http.StatusInternalServerError {
		if rest := strings.TrimLeft(strings.TrimPrefix(err.Error(), httpErr.Code), ":\n "); rest != "" {
			message = strings.ReplaceAll(rest, "\n", ": ")
		}
	}
	return &ErrorDetail{Code: httpErr.Code, Message: message}
}
