package engine

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/validate"
)

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	e, err := New(opts...)
	require.NoError(t, err)

	return e
}

// TestEvaluate_Arithmetic verifies operator precedence and associativity.
func TestEvaluate_Arithmetic(t *testing.T) {
	e := mustEngine(t)

	tests := map[string]float64{
		"2 + 3":             5,
		"10 - 3":            7,
		"4 * 5":             20,
		"7 / 2":             3.5,
		"2 + 3 * 4":         14,
		"(2 + 3) * 4":       20,
		"10 / 2 + 3 * 2":    11,
		"0.1 + 0.2":         0.3,
		"2 ^ 3":             8,
		"2 ^ -1":            0.5,
		"2 ^ 3 ^ 2":         512,
		"-2 ^ 2":            -4,
		"(-2) ^ 2":          4,
		"2 * -3":            -6,
		"2 - -3":            5,
		"+5":                5,
		"10 % 3":            1,
		"-7 % 3":            -1,
		"7.5 % 2":           1.5,
		"50%":               0.5,
		"200 * 10%":         20,
		"2(3 + 4)":          14,
		"(1 + 2)(3 + 4)":    21,
		".5 + 5.":           5.5,
		"1e3 + 2.5E-1":      1000.25,
		"2e3":               2000,
		"  2   +\t3 ":       5,
		"1 - 2 - 3":         -4,
		"64 / 4 / 2":        8,
		"abs(-3.5)":         3.5,
		"sqrt(16)":          4,
		"sqrt(0)":           0,
		"factorial(0)":      1,
		"factorial(5)":      120,
		"factorial(20)":     2432902008176640000,
		"factorial(3) ^ 2":  36,
		"log10(100)":        2,
		"log10(1000)":       3,
		"log(8, 2)":         3,
		"log(1000, 10)":     3,
		"exp(0)":            1,
		"10 ^ 15 / 10 ^ 15": 1,
	}
	for expr, want := range tests {
		t.Run(expr, func(t *testing.T) {
			got, err := e.Evaluate(expr)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

// TestEvaluate_Approximate verifies results that depend on float64 math.
func TestEvaluate_Approximate(t *testing.T) {
	e := mustEngine(t)

	tests := map[string]float64{
		"10.5 + 20.3": 30.8,
		"sqrt(2)":     math.Sqrt2,
		"pi":          math.Pi,
		"2 * pi":      2 * math.Pi,
		"2pi":         2 * math.Pi,
		"e":           math.E,
		"e ^ 2":       math.E * math.E,
		"log(e)":      1,
		"exp(1)":      math.E,
		"log(9, 3)":   2,
		"PI":          math.Pi,
	}
	for expr, want := range tests {
		got, err := e.Evaluate(expr)
		require.NoError(t, err, expr)
		require.InDelta(t, want, got, 1e-12, expr)
	}
}

// TestEvaluate_AngleModes verifies trigonometric functions honor the mode passed per call.
func TestEvaluate_AngleModes(t *testing.T) {
	e := mustEngine(t)

	deg := func(expr string) float64 {
		v, err := e.EvaluateIn(expr, angle.Degrees)
		require.NoError(t, err, expr)
		return v
	}
	rad := func(expr string) float64 {
		v, err := e.EvaluateIn(expr, angle.Radians)
		require.NoError(t, err, expr)
		return v
	}
	grad := func(expr string) float64 {
		v, err := e.EvaluateIn(expr, angle.Gradians)
		require.NoError(t, err, expr)
		return v
	}

	require.Equal(t, 0.0, deg("sin(0)"))
	require.Equal(t, 0.5, deg("sin(30)"))
	require.Equal(t, 1.0, deg("sin(90)"))
	require.Equal(t, 0.0, deg("sin(180)"))
	require.Equal(t, 0.5, deg("cos(60)"))
	require.Equal(t, 0.0, deg("cos(90)"))
	require.Equal(t, 1.0, deg("tan(45)"))
	require.Equal(t, 30.0, deg("asin(0.5)"))
	require.Equal(t, 90.0, deg("asin(1)"))
	require.Equal(t, 60.0, deg("acos(0.5)"))
	require.Equal(t, 45.0, deg("atan(1)"))

	require.InDelta(t, deg("sin(90)"), rad("sin(pi / 2)"), 1e-12)
	require.InDelta(t, -1.0, rad("cos(pi)"), 1e-12)
	require.InDelta(t, 1.0, rad("tan(pi / 4)"), 1e-12)
	require.InDelta(t, math.Pi/2, rad("asin(1)"), 1e-15)

	require.Equal(t, 1.0, grad("sin(100)"))
	require.Equal(t, 50.0, grad("atan(1)"))

	// Modes never leak between calls on the same engine.
	require.Equal(t, 1.0, deg("sin(90)"))
	require.Equal(t, angle.Degrees, e.AngleMode())
}

// TestEvaluate_Errors verifies each failure maps to its structured kind and fixed message.
func TestEvaluate_Errors(t *testing.T) {
	e := mustEngine(t)

	tests := []struct {
		expr     string
		kind     Kind
		sentinel error
		message  string
	}{
		{"5 / (2 - 2)", KindDivisionByZero, ErrDivisionByZero, "Division by zero"},
		{"5 % 0", KindDivisionByZero, ErrDivisionByZero, "Division by zero"},
		{"0 ^ -1", KindDivisionByZero, ErrDivisionByZero, "Division by zero"},
		{"log(5, 1)", KindDivisionByZero, ErrDivisionByZero, "Division by zero"},
		{"sqrt(-1)", KindNegativeSqrt, ErrNegativeSqrt, "Cannot take square root of negative number"},
		{"log(0)", KindNonPositiveLog, ErrNonPositiveLog, "Logarithm of non-positive number"},
		{"log(-1)", KindNonPositiveLog, ErrNonPositiveLog, "Logarithm of non-positive number"},
		{"log10(0)", KindNonPositiveLog, ErrNonPositiveLog, "Logarithm of non-positive number"},
		{"log(8, -2)", KindNonPositiveLog, ErrNonPositiveLog, "Logarithm of non-positive number"},
		{"factorial(-1)", KindInvalidFactorial, ErrInvalidFactorial, "Factorial is only defined for non-negative integers"},
		{"factorial(2.5)", KindInvalidFactorial, ErrInvalidFactorial, "Factorial is only defined for non-negative integers"},
		{"factorial(171)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"factorial(20000)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"factorial(10 ^ 30)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"factorial(1e30)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"2 ^ (2 ^ 70)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"10 ^ 400", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"exp(1000)", KindInfiniteResult, ErrInfiniteResult, "Result is infinite"},
		{"asin(2)", KindNotANumber, ErrNotANumber, "Result is not a number"},
		{"(-8) ^ (1 / 3)", KindNotANumber, ErrNotANumber, "Result is not a number"},
		{"foo(2)", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"x", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"2 3", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"sin", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"sin(1, 2)", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"log(1, 2, 3)", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"()", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"1.2.3", KindSyntax, ErrSyntax, "Invalid syntax"},
		{"1, 2", KindSyntax, ErrSyntax, "Invalid syntax"},
		{".", KindSyntax, ErrSyntax, "Invalid syntax"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := e.Evaluate(tt.expr)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.sentinel)
			require.Equal(t, tt.kind, KindOf(err))
			require.Equal(t, tt.message, err.Error())
		})
	}
}

// TestEvaluate_ValidationErrors verifies validator reasons propagate unchanged.
func TestEvaluate_ValidationErrors(t *testing.T) {
	e := mustEngine(t)

	_, err := e.Evaluate("5 / 0")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "zero")

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	require.Equal(t, validate.RuleDivisionByZero, verr.Rule)

	_, err = e.Evaluate("2 + * 3")
	require.Equal(t, KindValidation, KindOf(err))
	require.Equal(t, "Invalid syntax: consecutive operators", err.Error())

	_, err = e.Evaluate("")
	require.Equal(t, "Expression cannot be empty", err.Error())
}

// TestCompile verifies a compiled expression can be evaluated in several modes.
func TestCompile(t *testing.T) {
	e := mustEngine(t)

	x, err := e.Compile("  asin( 1 ) ")
	require.NoError(t, err)
	require.Equal(t, "asin( 1 )", x.String())

	v, err := x.Eval(angle.Degrees)
	require.NoError(t, err)
	require.Equal(t, 90.0, v)

	v, err = x.Eval(angle.Gradians)
	require.NoError(t, err)
	require.Equal(t, 100.0, v)
}

// TestNew_Options verifies option validation and immutable mode copies.
func TestNew_Options(t *testing.T) {
	e := mustEngine(t, WithAngleMode(angle.Radians), WithPrecision(128))
	require.Equal(t, angle.Radians, e.AngleMode())
	require.Equal(t, uint(128), e.Precision())

	v, err := e.Evaluate("sin(pi / 2)")
	require.NoError(t, err)
	require.InDelta(t, 1.0, v, 1e-15)

	deg := e.WithAngleMode(angle.Degrees)
	require.Equal(t, angle.Radians, e.AngleMode())
	require.Equal(t, angle.Degrees, deg.AngleMode())

	_, err = New(WithAngleMode(angle.Mode(9)))
	require.Error(t, err)
	_, err = New(WithPrecision(8))
	require.Error(t, err)

	require.Equal(t, angle.Degrees, Default().AngleMode())
}

// TestEngine_ConcurrentModes verifies callers in different modes do not interfere.
func TestEngine_ConcurrentModes(t *testing.T) {
	e := mustEngine(t)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mode, expr, want := angle.Degrees, "sin(90)", 1.0
			if i%2 == 1 {
				mode, expr, want = angle.Gradians, "sin(100)", 1.0
			}
			got, err := e.EvaluateIn(expr, mode)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New(expr)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

// TestKind_String verifies every kind has a name.
func TestKind_String(t *testing.T) {
	for k := KindValidation; k <= KindInfiniteResult; k++ {
		require.NotEqual(t, "unknown", k.String())
	}
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}
