// Package validate checks user-entered numbers and expressions before evaluation.
//
// Validation is purely textual. An expression that passes may still fail to
// evaluate; the engine reports those failures with its own error kinds.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule identifies which check rejected the input.
type Rule uint8

const (
	RuleEmpty Rule = iota + 1
	RuleInfinite
	RuleNaN
	RuleFormat
	RuleNotFinite
	RuleUnbalanced
	RuleCharacters
	RuleConsecutiveOperators
	RuleTrailingOperator
	RuleDivisionByZero
)

func (r Rule) String() string {
	switch r {
	case RuleEmpty:
		return "empty"
	case RuleInfinite:
		return "infinite"
	case RuleNaN:
		return "nan"
	case RuleFormat:
		return "format"
	case RuleNotFinite:
		return "not-finite"
	case RuleUnbalanced:
		return "unbalanced-parentheses"
	case RuleCharacters:
		return "invalid-characters"
	case RuleConsecutiveOperators:
		return "consecutive-operators"
	case RuleTrailingOperator:
		return "trailing-operator"
	case RuleDivisionByZero:
		return "division-by-zero"
	default:
		return "unknown"
	}
}

// Error describes a failed validation. Reason is the user-facing message.
type Error struct {
	Rule   Rule
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func fail(rule Rule, reason string) *Error {
	return &Error{Rule: rule, Reason: reason}
}

var (
	decimalPattern     = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	allowedChars       = regexp.MustCompile(`^[0-9a-zA-Z+\-*/^().%\s,]+$`)
	consecutiveOps     = regexp.MustCompile(`[+*/^]\s*[+*/^]`)
	trailingOperator   = regexp.MustCompile(`[+\-*/^]$`)
	literalDivideZero  = regexp.MustCompile(`/\s*0(?:\s|$|[+\-*/^)])`)
	whitespaceSequence = regexp.MustCompile(`\s+`)
)

// Number checks that text is a finite decimal number. It returns nil or an *Error.
//
// Surrounding whitespace is tolerated. Signs, a decimal point and an exponent
// are accepted; hexadecimal and digit-separator forms are not.
func Number(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fail(RuleEmpty, "Input cannot be empty")
	}

	switch text {
	case "Infinity", "-Infinity":
		return fail(RuleInfinite, "Infinite values are not allowed")
	case "NaN":
		return fail(RuleNaN, "Not a valid number")
	}

	// Padded or explicitly signed infinities miss the exact-text check above.
	switch trimmed {
	case "Infinity", "+Infinity", "-Infinity":
		return fail(RuleNotFinite, "Number must be finite")
	}

	if !decimalPattern.MatchString(trimmed) {
		return fail(RuleFormat, "Not a valid number format")
	}

	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		// The pattern guarantees syntax, so the only failure left is overflow.
		return fail(RuleNotFinite, "Number must be finite")
	}

	return nil
}

// Expression applies the textual rules in order and returns the first failure,
// or nil when the expression may be handed to the evaluator.
func Expression(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fail(RuleEmpty, "Expression cannot be empty")
	}

	depth := 0
	for _, ch := range trimmed {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return fail(RuleUnbalanced, "Unbalanced parentheses: too many closing parentheses")
		}
	}
	if depth > 0 {
		return fail(RuleUnbalanced, "Unbalanced parentheses: missing closing parentheses")
	}

	if !allowedChars.MatchString(trimmed) {
		return fail(RuleCharacters, "Expression contains invalid characters")
	}
	if consecutiveOps.MatchString(trimmed) {
		return fail(RuleConsecutiveOperators, "Invalid syntax: consecutive operators")
	}
	if trailingOperator.MatchString(trimmed) {
		return fail(RuleTrailingOperator, "Expression cannot end with an operator")
	}
	if literalDivideZero.MatchString(trimmed) {
		return fail(RuleDivisionByZero, "Division by zero is not allowed")
	}

	return nil
}

// Sanitize trims text and collapses every whitespace run to a single space.
func Sanitize(text string) string {
	return whitespaceSequence.ReplaceAllString(strings.TrimSpace(text), " ")
}

// IsValidNumber reports whether Number accepts text.
func IsValidNumber(text string) bool {
	return Number(text) == nil
}

// IsValidExpression reports whether Expression accepts text.
func IsValidExpression(text string) bool {
	return Expression(text) == nil
}
