package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// decode reads a completed API response and either unmarshals the body into
// T or returns the typed error for the status code. A literal JSON null body
// on success yields (nil, nil): the backend uses it to signal "no such pack
// yet", which is not an error and must stay distinct from 404.
func decode[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body)
	}

	var out *T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response body", goerr.V("status_code", resp.StatusCode))
	}
	return out, nil
}

// apiError maps a non-2xx status code to its typed error, carrying the
// server's detail message.
func apiError(statusCode int, body []byte) error {
	detail := errorDetail(body)
	code := goerr.V("status_code", statusCode)

	switch {
	case statusCode == http.StatusUnauthorized:
		return goerr.Wrap(ErrAuthentication, detail, code)
	case statusCode == http.StatusNotFound:
		return goerr.Wrap(ErrNotFound, detail, code)
	case statusCode == http.StatusUnprocessableEntity:
		return goerr.Wrap(ErrValidation, detail, code)
	case statusCode == http.StatusTooManyRequests:
		return goerr.Wrap(ErrRateLimit, detail, code)
	case statusCode >= 500:
		return goerr.Wrap(ErrServer, detail, code)
	default:
		return goerr.Wrap(ErrAPI, detail, code)
	}
}

// errorDetail extracts the "detail" field from an error body. Non-string
// details are stringified; unparseable bodies fall back to the raw text.
func errorDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", payload.Detail)
	}
	return string(body)
}
