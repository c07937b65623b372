// Package errors provides structured error types for the doclib client.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindNetwork
	KindGateway
	KindUsage
	KindDisplay
	KindIO
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindNetwork:
		return "network error"
	case KindGateway:
		return "server error"
	case KindUsage:
		return "usage error"
	case KindDisplay:
		return "display error"
	case KindIO:
		return "I/O error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for doclib.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Gateway errors
func GatewayUnreachable(url string, err error) error {
	return E(Op("api.do"), KindNetwork, fmt.Sprintf("could not connect to server at %s", url), err)
}

func GatewayStatus(op Op, status int, body string) error {
	return E(op, KindGateway, fmt.Sprintf("server returned %d: %s", status, body))
}

// User input errors
func BadIndex(token string) error {
	return E(Op("chat.ParseIndices"), KindUsage, fmt.Sprintf("invalid index %q", token))
}

func NoDocumentSelected() error {
	return E(Op("chat.resolveSlug"), KindUsage, "no document selected")
}

// Display errors
func NoGraphicalDisplay(hint string) error {
	return E(Op("viewer.Open"), KindDisplay, hint)
}
