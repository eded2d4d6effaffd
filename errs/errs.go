package errs

import "errors"

// Error kinds exposed to the protocol layer. Store failures get wrapped
// with one of these so callers can map them to status codes via errors.Is.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrNotCollection = errors.New("resource is not a collection")
	ErrNotItem       = errors.New("resource is not an item")
	ErrIO            = errors.New("io failure")
	ErrPathEscape    = errors.New("path escapes namespace root")
)

type kindError struct {
	kind  error
	msg   string
	cause error
}

// New builds an error of the given kind without an underlying cause.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Wrap attaches a kind to a low-level failure. The cause stays reachable
// through errors.Is/errors.As, nothing is swallowed.
func Wrap(kind error, msg string, cause error) error {
	return &kindError{kind: kind, msg: msg, cause: cause}
}

func (e *kindError) Error() string {
	m := e.kind.Error() + ": " + e.msg
	if e.cause != nil {
		m += ": " + e.cause.Error()
	}
	return m
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}
