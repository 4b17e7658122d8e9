package validator

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ErrMalformedBody signals a request body that is not valid JSON at all,
// as opposed to valid JSON that fails field validation.
var ErrMalformedBody = errors.New("malformed request body")

// DecodeJSONStrict decodes a request body into dst, rejecting unknown
// fields. Unknown fields and type mismatches come back as
// ValidationErrors so the handler can return a per-field 422; anything
// else comes back as ErrMalformedBody.
func DecodeJSONStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ValidationErrors{{
				Field:   typeErr.Field,
				Message: "expected " + typeErr.Type.String(),
			}}
		}

		if field, ok := unknownField(err); ok {
			return ValidationErrors{{
				Field:   field,
				Message: "unknown field",
			}}
		}

		return ErrMalformedBody
	}

	// Trailing garbage after the JSON document.
	if dec.More() {
		return ErrMalformedBody
	}

	return nil
}

// unknownField digs the offending field name out of the stdlib error for
// DisallowUnknownFields, which is only exposed as text.
func unknownField(err error) (string, bool) {
	const marker = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, marker) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, marker), `"`), true
}
