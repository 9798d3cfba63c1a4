package ask

import (
	"errors"
	"net/url"
)

// RequestFailure is the single error kind surfaced to the user: network
// errors, unreadable bodies and non-JSON responses all end up here.
type RequestFailure struct {
	Op  string // "send", "read" or "decode"
	Err error
}

// Error returns the message of the underlying failure so it can be shown
// verbatim after "Error: ".
func (e *RequestFailure) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// IsRequestFailure reports whether err is, or wraps, a RequestFailure.
func IsRequestFailure(err error) bool {
	var rf *RequestFailure
	return errors.As(err, &rf)
}

// transportCause strips the *url.Error wrapper added by http.Client so the
// message is the transport's own ("connection refused", "Network down").
func transportCause(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
