package fbref

import (
	"fmt"
	"strings"
)

// FetchError reports a request that failed in transit or came back
// with a non-200 status.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.Url, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.Url, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a name that could not be resolved against the
// directory it was looked up in. Suggestions holds directory entries
// similar to the requested name, best match first.
type NotFoundError struct {
	// Kind is "league", "team" or "player".
	Kind        string
	Name        string
	Scope       string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if e.Scope != "" {
		msg += fmt.Sprintf(" in %s", e.Scope)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(", did you mean: %s", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// ParseError reports a page whose html did not have the structure the
// scraper expected.
type ParseError struct {
	Url    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %s", e.Url, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Url, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
