package common

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidAmountFormat   ErrorKind = "InvalidAmountFormat"
	KindChainMismatch         ErrorKind = "ChainMismatch"
	KindIncompleteIntent      ErrorKind = "IncompleteIntent"
	KindChainUnavailable      ErrorKind = "ChainUnavailable"
	KindValidationFailed      ErrorKind = "ValidationFailed"
	KindEstimationUnavailable ErrorKind = "EstimationUnavailable"
	KindSubmissionInProgress  ErrorKind = "SubmissionInProgress"
	KindSubmissionFailed      ErrorKind = "SubmissionFailed"
	KindAlreadyConnecting     ErrorKind = "AlreadyConnecting"
	KindConnectionFailed      ErrorKind = "ConnectionFailed"
	KindNotConnected          ErrorKind = "NotConnected"
	KindNotFound              ErrorKind = "NotFound"
	KindInvalidTransition     ErrorKind = "InvalidTransition"
)

// Error carries the kind of failure plus the offending field and value so
// callers can render an actionable message.
type Error struct {
	Kind  ErrorKind
	Field string
	Value string
	Err   error
}

// Sentinels for errors.Is. Matching is by kind only.
var (
	ErrInvalidAmountFormat   = &Error{Kind: KindInvalidAmountFormat}
	ErrChainMismatch         = &Error{Kind: KindChainMismatch}
	ErrIncompleteIntent      = &Error{Kind: KindIncompleteIntent}
	ErrChainUnavailable      = &Error{Kind: KindChainUnavailable}
	ErrValidationFailed      = &Error{Kind: KindValidationFailed}
	ErrEstimationUnavailable = &Error{Kind: KindEstimationUnavailable}
	ErrSubmissionInProgress  = &Error{Kind: KindSubmissionInProgress}
	ErrSubmissionFailed      = &Error{Kind: KindSubmissionFailed}
	ErrAlreadyConnecting     = &Error{Kind: KindAlreadyConnecting}
	ErrConnectionFailed      = &Error{Kind: KindConnectionFailed}
	ErrNotConnected          = &Error{Kind: KindNotConnected}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrInvalidTransition     = &Error{Kind: KindInvalidTransition}
)

func NewError(kind ErrorKind, field string, value string, cause error) *Error {
	return &Error{
		Kind:  kind,
		Field: field,
		Value: value,
		Err:   cause,
	}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(" [%s=%q]", e.Field, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost *Error in the chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
