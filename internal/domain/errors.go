package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ErrorKind string

const (
	KindInvalidData         ErrorKind = "INVALID_DATA"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindDuplicate           ErrorKind = "DUPLICATE_RESOURCE"
	KindInvalidPin          ErrorKind = "INVALID_PIN"
	KindInvalidCredentials  ErrorKind = "INVALID_CREDENTIALS"
	KindInactiveAccount     ErrorKind = "INACTIVE_ACCOUNT"
	KindInsufficientBalance ErrorKind = "INSUFFICIENT_BALANCE"
	KindInternal            ErrorKind = "INTERNAL"
)

// Error is the closed set of domain failures. Every failure a caller can see
// carries one of the kinds above; handlers map kinds to HTTP status codes
// without parsing messages.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string

	// Populated only for KindInsufficientBalance.
	Available decimal.Decimal
	Required  decimal.Decimal

	cause error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func ErrInvalidData(field, msg string) *Error {
	return &Error{Kind: KindInvalidData, Field: field, Message: msg}
}

func ErrNotFound(resource, identifier string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", resource, identifier)}
}

func ErrDuplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

// ErrInvalidPin is always generic-messaged so a caller cannot use it as an
// oracle for which part of the check failed.
func ErrInvalidPin() *Error {
	return &Error{Kind: KindInvalidPin, Message: "invalid transaction PIN"}
}

func ErrInvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

func ErrInactiveAccount(status AccountStatus) *Error {
	return &Error{Kind: KindInactiveAccount, Message: fmt.Sprintf("account is not active (status: %s)", status)}
}

func ErrInsufficientBalance(available, required decimal.Decimal) *Error {
	return &Error{
		Kind:      KindInsufficientBalance,
		Message:   fmt.Sprintf("insufficient balance: available %s, required %s", available.StringFixed(2), required.StringFixed(2)),
		Available: available,
		Required:  required,
	}
}

func ErrInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// AsError extracts a *Error from err, wrapping anything unexpected as
// KindInternal so storage failures are never surfaced raw to callers.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return ErrInternal(err)
}

func KindOf(err error) ErrorKind {
	return AsError(err).Kind
}
