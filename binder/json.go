package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// MaxJSONBodySize bounds the request body read by JSON.
const MaxJSONBodySize = 1 << 20

// JSON decodes an application/json body. Unknown fields and trailing data are
// rejected. Requests without a body are left untouched when optional is true.
func JSON(optional bool) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if optional && (r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0) {
			return nil
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return errors.Join(ErrBindFailed, ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return errors.Join(ErrBindFailed, ErrUnsupportedMediaType, fmt.Errorf("got %q", contentType))
		}

		decoder := json.NewDecoder(io.LimitReader(r.Body, MaxJSONBodySize))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("empty body")
			}
			return errors.Join(ErrBindFailed, ErrInvalidJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return errors.Join(ErrBindFailed, ErrInvalidJSON, errors.New("unexpected data after JSON object"))
		}
		return nil
	}
}
