package catalog

import (
	"fmt"
	"net/http"
)

// FetchError is a failed list query: transport failure, non-2xx status or undecodable body.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("list airports: HTTP %d: %v", e.Status, e.Err)
	}
	return "list airports: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CreateError is a failed create call. Reason carries the server's message when it sent one.
type CreateError struct {
	Status int
	Reason string
	Err    error
}

func (e *CreateError) Error() string {
	switch {
	case e.Status != 0 && e.Reason != "":
		return fmt.Sprintf("create airport: HTTP %d: %s", e.Status, e.Reason)
	case e.Status != 0:
		return fmt.Sprintf("create airport: HTTP %d %s", e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return "create airport: " + e.Err.Error()
	default:
		return "create airport: request failed"
	}
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
