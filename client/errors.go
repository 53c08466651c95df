package client

import (
	"errors"
	"fmt"
)

// QueryError reports a non-2xx response from the endpoint. Body holds a
// truncated copy of the response for diagnostics.
type QueryError struct {
	Endpoint string
	Status   int
	Body     string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("endpoint %s returned HTTP %d: %s", e.Endpoint, e.Status, e.Body)
}

// IsQueryError reports whether err is (or wraps) an endpoint error, and
// returns it.
func IsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
