package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireRule(t *testing.T, err error, rule Rule) *Error {
	t.Helper()

	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validate.Error, got %v", err)
	require.Equal(t, rule, verr.Rule)

	return verr
}

// TestNumber verifies accepted and rejected number formats.
func TestNumber(t *testing.T) {
	for _, ok := range []string{"0", "123", "-4.5", "+7", ".5", "5.", "1e3", "2.5E-3", " 42 "} {
		require.NoError(t, Number(ok), ok)
		require.True(t, IsValidNumber(ok), ok)
	}

	tests := []struct {
		in     string
		rule   Rule
		reason string
	}{
		{"", RuleEmpty, "Input cannot be empty"},
		{"   ", RuleEmpty, "Input cannot be empty"},
		{"Infinity", RuleInfinite, "Infinite values are not allowed"},
		{"-Infinity", RuleInfinite, "Infinite values are not allowed"},
		{" Infinity", RuleNotFinite, "Number must be finite"},
		{"+Infinity", RuleNotFinite, "Number must be finite"},
		{"NaN", RuleNaN, "Not a valid number"},
		{"abc", RuleFormat, "Not a valid number format"},
		{"1.2.3", RuleFormat, "Not a valid number format"},
		{"0x1F", RuleFormat, "Not a valid number format"},
		{"1_000", RuleFormat, "Not a valid number format"},
		{"1e400", RuleNotFinite, "Number must be finite"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			verr := requireRule(t, Number(tt.in), tt.rule)
			require.Equal(t, tt.reason, verr.Reason)
			require.False(t, IsValidNumber(tt.in))
		})
	}
}

// TestExpression_Valid verifies well-formed expressions pass.
func TestExpression_Valid(t *testing.T) {
	for _, expr := range []string{
		"2 + 3",
		"2 * -3",
		"2 - -3",
		"sin(30) + cos(60)",
		"log(8, 2)",
		"10 % 3",
		"(1 + 2) * (3 + 4)",
		"1 / 0.5",
		"2^10",
		"-5",
	} {
		require.NoError(t, Expression(expr), expr)
		require.True(t, IsValidExpression(expr), expr)
	}
}

// TestExpression_Rules verifies each rule and its message, in evaluation order.
func TestExpression_Rules(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		rule   Rule
		reason string
	}{
		{"empty", "", RuleEmpty, "Expression cannot be empty"},
		{"blank", " \t ", RuleEmpty, "Expression cannot be empty"},
		{"too many closing", "(1 + 2))", RuleUnbalanced, "Unbalanced parentheses: too many closing parentheses"},
		{"closing first", ")1(", RuleUnbalanced, "Unbalanced parentheses: too many closing parentheses"},
		{"missing closing", "((1 + 2)", RuleUnbalanced, "Unbalanced parentheses: missing closing parentheses"},
		{"invalid chars", "2 & 3", RuleCharacters, "Expression contains invalid characters"},
		{"consecutive", "2 + * 3", RuleConsecutiveOperators, "Invalid syntax: consecutive operators"},
		{"consecutive tight", "2++3", RuleConsecutiveOperators, "Invalid syntax: consecutive operators"},
		{"trailing plus", "2 +", RuleTrailingOperator, "Expression cannot end with an operator"},
		{"trailing minus", "2 -", RuleTrailingOperator, "Expression cannot end with an operator"},
		{"div zero end", "5 / 0", RuleDivisionByZero, "Division by zero is not allowed"},
		{"div zero paren", "(5 / 0)", RuleDivisionByZero, "Division by zero is not allowed"},
		{"div zero op", "5/0+1", RuleDivisionByZero, "Division by zero is not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := requireRule(t, Expression(tt.in), tt.rule)
			require.Equal(t, tt.reason, verr.Reason)
			require.Equal(t, tt.reason, verr.Error())
		})
	}
}

// TestExpression_RuleOrder verifies balance is checked before characters.
func TestExpression_RuleOrder(t *testing.T) {
	requireRule(t, Expression("(2 & 3"), RuleUnbalanced)
	requireRule(t, Expression("2 & +"), RuleCharacters)
}

// TestSanitize verifies trimming and whitespace collapsing.
func TestSanitize(t *testing.T) {
	require.Equal(t, "2 + 3", Sanitize("  2   +\t\n3  "))
	require.Equal(t, "", Sanitize("   "))
}

// TestRule_String verifies every rule has a name.
func TestRule_String(t *testing.T) {
	for r := RuleEmpty; r <= RuleDivisionByZero; r++ {
		require.NotEqual(t, "unknown", r.String())
	}
	require.Equal(t, "unknown", Rule(0).String())
}
