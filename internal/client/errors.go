package client

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorKind tells the three failure classes of a request apart.
type ErrorKind int

const (
	// KindTransport: the request never got an HTTP answer (DNS, refused, TLS, cancelled).
	KindTransport ErrorKind = iota + 1
	// KindHTTP: the server answered with a non-2xx status.
	KindHTTP
	// KindDecode: a 2xx answer whose body is not valid JSON for the expected shape.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Fallback messages used when the server does not provide one.
const (
	msgUnknownError = "Erro desconhecido"
	msgStatusPrefix = "Erro: "
)

// APIError is the single error type returned by every Client call.
type APIError struct {
	Kind    ErrorKind
	Status  int // 0 unless Kind == KindHTTP
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is an authorization failure. Besides the
// 401 status it also matches messages mentioning 401, for backends that wrap
// the status in another code.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind != KindHTTP {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || strings.Contains(apiErr.Message, "401")
}

// IsOffline reports whether err means the backend could not be reached at all.
func IsOffline(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// IsDecode reports whether the server answered 2xx with a body that could not
// be read as the expected payload.
func IsDecode(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindDecode
}
