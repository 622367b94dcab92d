package engine

import (
	"errors"
	"fmt"
)

// Kind classifies evaluation failures.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindDivisionByZero
	KindNegativeSqrt
	KindNonPositiveLog
	KindInvalidFactorial
	KindSyntax
	KindNotANumber
	KindInfiniteResult
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDivisionByZero:
		return "division-by-zero"
	case KindNegativeSqrt:
		return "negative-sqrt"
	case KindNonPositiveLog:
		return "non-positive-log"
	case KindInvalidFactorial:
		return "invalid-factorial"
	case KindSyntax:
		return "syntax"
	case KindNotANumber:
		return "not-a-number"
	case KindInfiniteResult:
		return "infinite-result"
	default:
		return "unknown"
	}
}

// message returns the fixed user-facing message for k.
func (k Kind) message() string {
	switch k {
	case KindDivisionByZero:
		return "Division by zero"
	case KindNegativeSqrt:
		return "Cannot take square root of negative number"
	case KindNonPositiveLog:
		return "Logarithm of non-positive number"
	case KindInvalidFactorial:
		return "Factorial is only defined for non-negative integers"
	case KindSyntax:
		return "Invalid syntax"
	case KindNotANumber:
		return "Result is not a number"
	case KindInfiniteResult:
		return "Result is infinite"
	default:
		return "Unknown error during calculation"
	}
}

// Error is returned by every failed evaluation.
//
// Message is stable per Kind, except for KindValidation where it carries the
// validator's reason. Detail adds position or symbol information for logs.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "Invalid expression"}
	ErrDivisionByZero   = newError(KindDivisionByZero, "")
	ErrNegativeSqrt     = newError(KindNegativeSqrt, "")
	ErrNonPositiveLog   = newError(KindNonPositiveLog, "")
	ErrInvalidFactorial = newError(KindInvalidFactorial, "")
	ErrSyntax           = newError(KindSyntax, "")
	ErrNotANumber       = newError(KindNotANumber, "")
	ErrInfiniteResult   = newError(KindInfiniteResult, "")
	ErrUnknown          = newError(KindUnknown, "")
)

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Message: kind.message(), Detail: detail}
}

func errorf(kind Kind, format string, args ...any) *Error {
	return newError(kind, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}
