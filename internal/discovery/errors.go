package discovery

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a discovery failure
type Kind int

const (
	// KindInvalidRequest is the caller's fault; no upstream call was made
	KindInvalidRequest Kind = iota + 1
	// KindConfiguration is a deployment problem such as a missing API key
	KindConfiguration
	// KindUpstream means the provider answered non-2xx or was unreachable
	KindUpstream
	// KindInternal is anything else, reported with a generic message
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindConfiguration:
		return "configuration_error"
	case KindUpstream:
		return "upstream_failure"
	case KindInternal:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Messages returned to callers
const (
	MsgQueryRequired  = "Query parameter is required"
	MsgSearchFailed   = "Failed to fetch YouTube search data"
	MsgChannelsFailed = "Failed to fetch YouTube channel data"
	MsgInternal       = "Internal server error"
)

// Error is a classified discovery failure carrying the HTTP status and the
// message to show the caller.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a discovery error, classifying anything else as internal
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
}
