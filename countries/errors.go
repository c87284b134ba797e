/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package countries

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a passed identifier (country code or capital name)
// is blank or consists of whitespace only. It's always returned before any network access.
type ValidationError struct {
	Param string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s cannot be blank", e.Param)
}

// RemoteError is returned when the upstream API reports a failure:
// a non-success HTTP status, a transport-level error, or an empty result list.
// It carries the identifier the request was made with.
type RemoteError struct {
	Message    string
	Method     string
	URL        string
	StatusCode int
	Query      string
	Err        error
}

func (e *RemoteError) wrap(message string, err error) *RemoteError {
	e.Message = message
	e.Err = err
	return e
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	str := fmt.Sprintf("method: [%s] url: [%s] status: [%d] query: [%s] message: %s",
		e.Method, e.URL, e.StatusCode, e.Query, e.Message)
	if e.Err != nil {
		str += fmt.Sprintf(" error: %s", e.Err.Error())
	}
	return str
}

// Is allows checking the wrapped error with errors.Is.
func (e *RemoteError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// Unwrap allows checking the wrapped error with errors.As.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NoDataError is returned when the upstream API responds with a success status
// but the payload lacks the requested data (e.g. a country with no currencies array).
type NoDataError struct {
	Query   string
	Missing string
}

// Error implements the error interface.
func (e *NoDataError) Error() string {
	return fmt.Sprintf("no %s data found for %q", e.Missing, e.Query)
}
