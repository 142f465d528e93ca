// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/johssalinas/backend-accenture/config"
	"github.com/johssalinas/backend-accenture/pkg/validate"
)

// ErrUnsupportedMediaType is returned when the request declares a content
// type other than JSON.
var ErrUnsupportedMediaType = errors.New("content type must be application/json")

// JSON decodes r.Body into dest and runs validation. The body is capped at
// MAX_BODY_BYTES.
// Returns (errs, nil) when there are validation failures and (nil, err) when
// the body is malformed, too large, or not JSON.
func JSON(r *http.Request, dest any) (map[string]string, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return nil, ErrUnsupportedMediaType
		}
	}

	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return nil, errors.New("request body is empty")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
