package elevation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a single lookup failed.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindSchemaMismatch
	KindNoData
)

var (
	ErrTransport      = errors.New("elevation service request failed")
	ErrSchemaMismatch = errors.New("elevation response does not match a known schema")
	ErrNoData         = errors.New("no elevation data for point")
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindNoData:
		return "no_data"
	default:
		return fmt.Sprintf("unknown (%d)", int(k))
	}
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindSchemaMismatch:
		return ErrSchemaMismatch
	case KindNoData:
		return ErrNoData
	default:
		return nil
	}
}

// LookupError is the failure side of a lookup. Payload carries the raw
// response body when the body could not be normalized.
type LookupError struct {
	Kind    ErrorKind
	Detail  string
	Payload string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is(err, ErrNoData) and errors.Is(err, context.Canceled) both work.
func (e *LookupError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// AsLookupError extracts a *LookupError from err. Errors that did not come
// from the resolver are reported as transport failures.
func AsLookupError(err error) *LookupError {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr
	}
	return &LookupError{Kind: KindTransport, Detail: err.Error(), Err: err}
}
