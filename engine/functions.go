package engine

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/arloliu/abacus/angle"
)

// maxFactorial is the largest factorial computed exactly; larger inputs are
// reported as infinite since no float64 could hold the result anyway.
const maxFactorial = 10000

// Constant values carry more digits than a float64 so the big.Float context
// keeps its precision through chained operations.
var constants = map[string]string{
	"pi": "3.14159265358979323846264338327950288419716939937510582097494459230781640628620899863",
	"e":  "2.71828182845904523536028747135266249775724709369995957496696762772407663035354759457",
}

// lookupConstant resolves pi and e. PI and E are accepted as aliases.
func lookupConstant(name string) (string, bool) {
	switch name {
	case "PI":
		name = "pi"
	case "E":
		name = "e"
	}
	v, ok := constants[name]

	return v, ok
}

type function struct {
	minArgs, maxArgs int
	call             func(ctx *evalContext, args []*big.Float) (*big.Float, error)
}

func (f *function) arity() string {
	if f.minArgs == f.maxArgs {
		return fmt.Sprintf("%d argument(s)", f.minArgs)
	}

	return fmt.Sprintf("%d to %d arguments", f.minArgs, f.maxArgs)
}

func unary(call func(ctx *evalContext, x *big.Float) (*big.Float, error)) *function {
	return &function{
		minArgs: 1,
		maxArgs: 1,
		call: func(ctx *evalContext, args []*big.Float) (*big.Float, error) {
			return call(ctx, args[0])
		},
	}
}

var functions map[string]*function

func init() {
	functions = map[string]*function{
		"sin":       unary(forwardTrig("sin", math.Sin)),
		"cos":       unary(forwardTrig("cos", math.Cos)),
		"tan":       unary(forwardTrig("tan", math.Tan)),
		"asin":      unary(inverseTrig("asin", math.Asin)),
		"acos":      unary(inverseTrig("acos", math.Acos)),
		"atan":      unary(inverseTrig("atan", math.Atan)),
		"sqrt":      unary(sqrt),
		"log10":     unary(log10),
		"exp":       unary(exp),
		"factorial": unary(factorial),
		"abs":       unary(abs),
		"log":       {minArgs: 1, maxArgs: 2, call: logN},
	}
}

// forwardTrig converts the argument from the current angle mode to radians.
func forwardTrig(name string, fn func(float64) float64) func(*evalContext, *big.Float) (*big.Float, error) {
	return func(ctx *evalContext, x *big.Float) (*big.Float, error) {
		rad := toFloat64(x) * ctx.mode.ToRadians()
		return ctx.fromFloat64(tidy(fn(rad)), name)
	}
}

// inverseTrig converts the radian result to the current angle mode.
func inverseTrig(name string, fn func(float64) float64) func(*evalContext, *big.Float) (*big.Float, error) {
	return func(ctx *evalContext, x *big.Float) (*big.Float, error) {
		v := fn(toFloat64(x)) // NaN outside [-1, 1] for asin and acos
		if ctx.mode.Normalize() != angle.Radians {
			v = tidy(v * ctx.mode.FromRadians())
		}

		return ctx.fromFloat64(v, name)
	}
}

// tidy rounds to 15 significant digits and flushes values below 1e-15 to zero,
// so sin(180) in degrees yields 0, asin(0.5) yields 30 and log10(1000) yields 3.
func tidy(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if math.Abs(v) < 1e-15 {
		return 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	if err != nil {
		return v
	}

	return r
}

func sqrt(ctx *evalContext, x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 {
		return nil, newError(KindNegativeSqrt, "sqrt")
	}

	return ctx.newFloat().Sqrt(x), nil
}

// logBase computes the logarithm of a positive x with the given float64 kernel.
// Values outside the float64 range are split into mantissa and binary exponent.
func logBase(x *big.Float, kernel func(float64) float64) float64 {
	if f := toFloat64(x); f > 0 && !math.IsInf(f, 0) {
		return kernel(f)
	}

	mant := new(big.Float)
	exp := x.MantExp(mant)

	return kernel(toFloat64(mant)) + float64(exp)*kernel(2)
}

func logN(ctx *evalContext, args []*big.Float) (*big.Float, error) {
	x := args[0]
	if x.Sign() <= 0 {
		return nil, newError(KindNonPositiveLog, "log")
	}
	if len(args) == 1 {
		return ctx.fromFloat64(logBase(x, math.Log), "log")
	}

	base := args[1]
	if base.Sign() <= 0 {
		return nil, newError(KindNonPositiveLog, "log base")
	}

	switch b := toFloat64(base); b {
	case 1:
		return nil, newError(KindDivisionByZero, "log base 1")
	case 2:
		return ctx.fromFloat64(tidy(logBase(x, math.Log2)), "log")
	case 10:
		return ctx.fromFloat64(tidy(logBase(x, math.Log10)), "log")
	}

	return ctx.fromFloat64(tidy(logBase(x, math.Log)/logBase(base, math.Log)), "log")
}

func log10(ctx *evalContext, x *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 {
		return nil, newError(KindNonPositiveLog, "log10")
	}

	return ctx.fromFloat64(tidy(logBase(x, math.Log10)), "log10")
}

func exp(ctx *evalContext, x *big.Float) (*big.Float, error) {
	return ctx.fromFloat64(math.Exp(toFloat64(x)), "exp")
}

func abs(ctx *evalContext, x *big.Float) (*big.Float, error) {
	return ctx.newFloat().Abs(x), nil
}

func factorial(ctx *evalContext, x *big.Float) (*big.Float, error) {
	if x.Sign() < 0 || !x.IsInt() {
		return nil, newError(KindInvalidFactorial, "factorial")
	}
	n, acc := x.Int64()
	if acc != big.Exact {
		return nil, newError(KindInfiniteResult, "factorial")
	}
	if n > maxFactorial {
		return nil, errorf(KindInfiniteResult, "factorial(%d)", n)
	}
	if n < 2 {
		return ctx.newFloat().SetInt64(1), nil
	}

	product := new(big.Int).MulRange(1, n)

	return ctx.newFloat().SetInt(product), nil
}
