// Package verify talks to the remote verification service and provides
// the local fallback verdict path used when the service is unreachable.
package verify

import "fmt"

// TimeoutError means the remote call exceeded its deadline
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("verification timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// TransportError means the network itself failed
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("verification transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError means the service answered with a non-2xx status
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("verification service returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("verification service returned %d", e.Status)
}
