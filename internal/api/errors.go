package api

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced an HTTP response
// (DNS, dial, TLS or body read failure).
type TransportError struct {
	Err error
	URL string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is a response with a status outside 200-299.
type HTTPStatusError struct {
	URL        string
	Body       string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// EmptyBodyError is a successful status with no payload.
type EmptyBodyError struct {
	URL string
}

func (e *EmptyBodyError) Error() string {
	return fmt.Sprintf("%s returned an empty body", e.URL)
}

// DecodeError is a payload that does not match the expected shape.
// Body holds the raw response text.
type DecodeError struct {
	Err  error
	Body string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// URLConstructionError is raised locally before any request is sent.
type URLConstructionError struct {
	Err  error
	Base string
}

func (e *URLConstructionError) Error() string {
	return fmt.Sprintf("build request url from %q: %v", e.Base, e.Err)
}

func (e *URLConstructionError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an HTTPStatusError.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Describe renders err as the German message shown in place of a report.
func Describe(err error) string {
	var (
		transportErr *TransportError
		statusErr    *HTTPStatusError
		emptyErr     *EmptyBodyError
		decodeErr    *DecodeError
		urlErr       *URLConstructionError
	)

	switch {
	case errors.As(err, &urlErr):
		return "Ungültige URL: Die URL konnte nicht erstellt werden"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server-Fehler: Status Code %d", statusErr.StatusCode)
	case errors.As(err, &emptyErr):
		return "Keine Daten vom Server empfangen"
	case errors.As(err, &decodeErr):
		if decodeErr.Body == "" {
			return fmt.Sprintf("Fehler beim Verarbeiten der Daten: %v", decodeErr.Err)
		}
		return fmt.Sprintf("Fehler beim Verarbeiten der Daten: %v\nServer-Antwort: %s", decodeErr.Err, decodeErr.Body)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Netzwerkfehler: %v", transportErr.Err)
	default:
		return err.Error()
	}
}
