package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service error so handlers can pick a status, notice or redirect.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindDuplicateUser      Kind = "duplicate_user"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthenticated    Kind = "unauthenticated"
	KindUnauthorized       Kind = "unauthorized"
	KindInternal           Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input, if any.
	Field string
	Inner error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Inner }

func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NewDuplicateUserError(field, message string) *Error {
	return &Error{Kind: KindDuplicateUser, Field: field, Message: message}
}

func NewInvalidCredentialsError(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

func NewUnauthenticatedError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewInternalError(message string, inner error) *Error {
	return &Error{Kind: KindInternal, Message: message, Inner: inner}
}

// KindOf returns the kind of err. Errors that are not *Error count as internal;
// a nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool         { return KindOf(err) == KindValidation }
func IsDuplicateUser(err error) bool      { return KindOf(err) == KindDuplicateUser }
func IsInvalidCredentials(err error) bool { return KindOf(err) == KindInvalidCredentials }
func IsUnauthenticated(err error) bool    { return KindOf(err) == KindUnauthenticated }
func IsUnauthorized(err error) bool       { return KindOf(err) == KindUnauthorized }
func IsInternal(err error) bool           { return KindOf(err) == KindInternal }
