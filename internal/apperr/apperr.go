// Package apperr defines the error taxonomy shared by the services and
// mapped to HTTP statuses in the handler layer. Every error carries a
// user-visible reason string so the UI can explain precondition failures.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and caller diagnostics.
type Kind int

const (
	// Unauthorized: no or invalid principal. Terminal, no retry.
	Unauthorized Kind = iota + 1
	// Forbidden: authenticated but insufficient role or ownership.
	Forbidden
	// NotFound: an item or claim id does not resolve.
	NotFound
	// Validation: missing or malformed user-supplied fields.
	Validation
	// InvalidClaim: a claim-submission precondition was violated
	// (self-claim, duplicate pending claim, wrong item type or state).
	InvalidClaim
	// InvalidState: a state-machine transition precondition was violated
	// (e.g. confirming a claim that is not approved).
	InvalidState
	// Internal: unexpected storage or downstream failure.
	Internal
)

// Error is the concrete error type for all service-level failures.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// New builds an Error of the given kind.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Newf builds an Error with a formatted reason.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or Internal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
