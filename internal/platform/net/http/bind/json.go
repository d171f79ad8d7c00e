package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "lookalike/internal/platform/errors"
)

// DefaultMaxBytes caps a body when no MaxBytes option is given
const DefaultMaxBytes = 1 << 20

type options struct {
	maxBytes     int64
	allowUnknown bool
	allowEmpty   bool
}

// Option adjusts ParseJSON
type Option func(*options)

// MaxBytes caps the body size, n <= 0 removes the cap
func MaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

// AllowUnknown accepts fields T does not declare
func AllowUnknown() Option { return func(o *options) { o.allowUnknown = true } }

// AllowEmpty treats a missing body as the zero T, still validated
func AllowEmpty() Option { return func(o *options) { o.allowEmpty = true } }

// ParseJSON decodes exactly one JSON value from the body into T and validates it.
// GET and HEAD without a body yield the zero T.
func ParseJSON[T any](r *http.Request, opts ...Option) (T, error) {
	o := options{maxBytes: DefaultMaxBytes}
	for _, fn := range opts {
		fn(&o)
	}

	var zero, out T
	if r.Body == nil || r.Body == http.NoBody {
		return empty(r, zero, o)
	}
	defer r.Body.Close()

	body := io.Reader(r.Body)
	if o.maxBytes > 0 {
		body = http.MaxBytesReader(nil, r.Body, o.maxBytes)
	}
	br := bufio.NewReader(body)
	if _, err := br.Peek(1); errors.Is(err, io.EOF) {
		return empty(r, zero, o)
	}

	dec := json.NewDecoder(br)
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return zero, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(out); err != nil {
		return zero, err
	}
	return out, nil
}

func empty[T any](r *http.Request, zero T, o options) (T, error) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return zero, nil
	}
	if !o.allowEmpty {
		return zero, perr.JSONErrf("empty body")
	}
	return zero, Validate(zero)
}
