package model

import "errors"

// Kind classifies an error into the fixed taxonomy the API exposes.
// Every failure that crosses an actor boundary carries exactly one Kind;
// raw infrastructure errors never leave a handler.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindBadRequest
	KindValidation
	KindPasswordPolicy
)

// Error is the domain error placed into actor replies.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports an absent entity.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email or token.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Unauthorized reports a missing, invalid, expired or revoked credential,
// or a cross-account access attempt.
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// BadRequest reports malformed or policy-violating input.
func BadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// Validation reports a field-level format rejection.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// PasswordPolicy reports a password that fails the strength policy.
func PasswordPolicy(msg string) error {
	return &Error{Kind: KindPasswordPolicy, Message: msg}
}

// Internal reports a resource or infrastructure fault.
func Internal(msg string) error {
	return &Error{Kind: KindInternal, Message: msg}
}

// KindOf extracts the taxonomy kind of err. Anything that is not a
// *model.Error is treated as an internal fault.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
