package client

import (
	"github.com/m-mizutani/goerr/v2"
)

// Local configuration errors, raised before any network I/O.
var (
	ErrNoAPIKey  = goerr.New("api key required, pass WithAPIKey or set ELEPHANTASM_API_KEY")
	ErrNoAnimaID = goerr.New("anima id required, pass it in the input or set a client default")
)

// Remote errors, derived from the HTTP status code. Each carries the server's
// detail message and a "status_code" value; match narrowly with errors.Is
// against one of these, or extract the code with StatusCode.
var (
	ErrAuthentication = goerr.New("authentication failed")
	ErrNotFound       = goerr.New("resource not found")
	ErrValidation     = goerr.New("validation failed")
	ErrRateLimit      = goerr.New("rate limit exceeded")
	ErrServer         = goerr.New("server error")
	ErrAPI            = goerr.New("api request failed")
)

// ErrTimeout marks a request that hit the configured deadline. Kept distinct
// from ErrServer so callers can retry timeouts without treating 5xx the same.
var ErrTimeout = goerr.New("request timed out")

// StatusCode returns the HTTP status code attached to a remote error.
func StatusCode(err error) (int, bool) {
	goErr := goerr.Unwrap(err)
	if goErr == nil {
		return 0, false
	}
	code, ok := goErr.Values()["status_code"].(int)
	return code, ok
}
