package weather

import (
	"errors"
	"fmt"
)

// ErrNoCities is returned when a publish is requested for an empty city list.
var ErrNoCities = errors.New("no cities configured")

// AuthenticationError means the provider rejected the API key (HTTP 401).
type AuthenticationError struct{}

func (AuthenticationError) Error() string { return "invalid API key" }

// NotFoundError means the provider does not know the requested city (HTTP 404).
type NotFoundError struct{}

func (NotFoundError) Error() string { return "city not found" }

// UpstreamError carries any other non-2xx status from the provider.
type UpstreamError struct {
	StatusCode int
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("something went wrong upstream (%d)", e.StatusCode)
}

// DecodeError means the provider body could not be decoded into an Observation.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("couldn't decode JSON data: %v", e.Err)
}

func (e DecodeError) Unwrap() error { return e.Err }

// CredentialMissingError names a configuration section/key that has no value.
type CredentialMissingError struct {
	Section string
	Key     string
}

func (e CredentialMissingError) Error() string {
	return fmt.Sprintf("missing credential %s.%s", e.Section, e.Key)
}
