package application

import (
	"errors"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals malformed input. It is always detected before any gateway call.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrNotFound signals that the addressed entity, or its required parent, does not exist.
	ErrNotFound = errors.New("catalog entity not found")
	// ErrConflict signals that a name uniqueness invariant would be violated.
	ErrConflict = errors.New("catalog name conflict")
)

// Kind names used when a classified error has to cross a serialization boundary.
const (
	KindInvalidInput = "InvalidInput"
	KindNotFound     = "NotFound"
	KindConflict     = "Conflict"
)

// Error is a classified catalog failure. Error returns the caller-facing message,
// errors.Is matches the kind sentinel and the underlying cause.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// invalidInput reports the domain rule that was broken. Storage detail such as a
// constraint name stays in the chain and never reaches the message.
func invalidInput(cause error) error {
	msg := cause.Error()
	for _, rule := range []error{domain.ErrNameRequired, domain.ErrNegativeStock} {
		if errors.Is(cause, rule) {
			msg = rule.Error()
			break
		}
	}
	return &Error{kind: ErrInvalidInput, msg: msg, cause: cause}
}

func notFound(msg string, cause error) error {
	return &Error{kind: ErrNotFound, msg: msg, cause: cause}
}

func conflict(msg string, cause error) error {
	return &Error{kind: ErrConflict, msg: msg, cause: cause}
}

var errProductIDRequired = errors.New("product id required")

// KindOf reports the classification of err, or "" for opaque errors.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return ""
	}
}

// Reclassify rebuilds a classified error from its kind and message, e.g. after a workflow boundary.
// Unknown kinds yield nil.
func Reclassify(kind, msg string) error {
	switch kind {
	case KindInvalidInput:
		return &Error{kind: ErrInvalidInput, msg: msg}
	case KindNotFound:
		return &Error{kind: ErrNotFound, msg: msg}
	case KindConflict:
		return &Error{kind: ErrConflict, msg: msg}
	default:
		return nil
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, domain.ErrNameRequired) ||
		errors.Is(err, domain.ErrNegativeStock) {
		return invalidInput(err)
	}
	return err
}
