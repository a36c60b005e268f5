package providers

import (
	"errors"
	"fmt"
)

// FetchError captures a failed upstream call with enough context to log
// and classify it.
type FetchError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream fetch failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: %s (status=%d)", e.Provider, e.Endpoint, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Endpoint, msg)
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
