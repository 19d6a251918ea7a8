// Package apperr defines the error taxonomy shared by services and mapped to
// HTTP status codes at the controller boundary.
package apperr

import "errors"

type Kind int

const (
	// KindValidation is malformed or missing input.
	KindValidation Kind = iota
	// KindUnauthorized is a missing or unusable credential.
	KindUnauthorized
	// KindForbidden is an authenticated caller without permission.
	KindForbidden
	// KindNotFound is an absent entity, including an absent active attempt.
	KindNotFound
	// KindRuleViolation is a business rule rejection (attempt limit reached,
	// duplicate enrollment, duplicate review, and similar).
	KindRuleViolation
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func RuleViolation(msg string) error {
	return &Error{Kind: KindRuleViolation, Message: msg}
}

// Wrap attaches an underlying cause while keeping the taxonomy kind.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the taxonomy kind of err and whether err belongs to the
// taxonomy at all.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
