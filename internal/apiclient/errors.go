package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the closed set of remote-call failure classes.
type Kind string

const (
	// KindNetwork covers transport failures, timeouts and undecodable bodies.
	KindNetwork Kind = "network"
	// KindClient is a 4xx response that is not a validation rejection.
	KindClient Kind = "client_error"
	// KindServer is a 5xx response.
	KindServer Kind = "server_error"
	// KindValidation is input rejected locally, or a 400/422 carrying field errors.
	KindValidation Kind = "validation"
)

// Error is returned by every failed Client call.
type Error struct {
	Op      string // e.g. "brand.create"
	Kind    Kind
	Status  int // HTTP status, 0 when no response was received
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString("]")
	}
	if e.Err != nil && e.Message == "" {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// IsUnauthorized reports a 401/403 from the store API.
func IsUnauthorized(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden
	}
	return false
}

func validationError(op string, problems []string) *Error {
	return &Error{Op: op, Kind: KindValidation, Message: "invalid input", Details: problems}
}

// classify maps a non-2xx response to an *Error.
func classify(op string, status int, env errorEnvelope) *Error {
	e := &Error{Op: op, Status: status, Details: env.problems(), Message: env.Message}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	switch {
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && len(e.Details) > 0:
		e.Kind = KindValidation
	case status >= 500:
		e.Kind = KindServer
	default:
		e.Kind = KindClient
	}
	return e
}

// errorEnvelope reads the failure fields the store API may send.
type errorEnvelope struct {
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
	Error   string   `json:"error"`
}

func (e errorEnvelope) problems() []string {
	out := make([]string, 0, len(e.Errors)+1)
	for _, s := range e.Errors {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 && e.Error != "" {
		out = append(out, e.Error)
	}
	return out
}
