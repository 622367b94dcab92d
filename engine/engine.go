// Package engine evaluates calculator expressions.
//
// Expressions are validated, parsed into a tree and evaluated with math/big
// floats at a configurable precision; the result is rounded to float64 only at
// the end. Trigonometric functions honor an angle mode passed per evaluation,
// so one Engine can serve callers working in different modes concurrently.
//
// Failures are reported as *Error values with a Kind:
//
//	v, err := eng.EvaluateIn("sqrt(-4)", angle.Degrees)
//	if errors.Is(err, engine.ErrNegativeSqrt) { ... }
package engine

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/arloliu/abacus/angle"
	"github.com/arloliu/abacus/internal/options"
	"github.com/arloliu/abacus/validate"
)

const (
	DefaultPrecision = 256 // mantissa bits used for intermediate results
	MinPrecision     = 64
)

// Engine evaluates expressions. It is immutable after construction and safe for concurrent use.
type Engine struct {
	mode angle.Mode
	prec uint
}

// Option configures an Engine.
type Option = options.Option[*Engine]

// WithAngleMode sets the default angle mode used by Evaluate.
func WithAngleMode(mode angle.Mode) Option {
	return options.New(func(e *Engine) error {
		if !mode.IsValid() {
			return fmt.Errorf("engine: invalid angle mode %d", uint8(mode))
		}
		e.mode = mode

		return nil
	})
}

// WithPrecision sets the mantissa precision, in bits, of intermediate results.
func WithPrecision(bits uint) Option {
	return options.New(func(e *Engine) error {
		if bits < MinPrecision || bits > big.MaxPrec {
			return fmt.Errorf("engine: precision %d out of range [%d, %d]", bits, MinPrecision, uint(big.MaxPrec))
		}
		e.prec = bits

		return nil
	})
}

// New creates an Engine. Defaults are Degrees and DefaultPrecision.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{mode: angle.Degrees, prec: DefaultPrecision}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Default returns an Engine with default settings.
func Default() *Engine {
	return &Engine{mode: angle.Degrees, prec: DefaultPrecision}
}

// AngleMode returns the mode Evaluate uses.
func (e *Engine) AngleMode() angle.Mode {
	return e.mode
}

// Precision returns the intermediate precision in bits.
func (e *Engine) Precision() uint {
	return e.prec
}

// WithAngleMode returns a copy of e whose Evaluate uses mode.
func (e *Engine) WithAngleMode(mode angle.Mode) *Engine {
	cp := *e
	cp.mode = mode.Normalize()

	return &cp
}

// Evaluate evaluates expr in the engine's angle mode.
func (e *Engine) Evaluate(expr string) (float64, error) {
	return e.EvaluateIn(expr, e.mode)
}

// EvaluateIn evaluates expr with trigonometric functions working in mode.
//
// Parameters:
//   - expr: Expression text as typed by the user
//   - mode: Angle mode for sin/cos/tan input and asin/acos/atan output
//
// Returns:
//   - float64: Finite result
//   - error: *Error describing validation, syntax or arithmetic failures
func (e *Engine) EvaluateIn(expr string, mode angle.Mode) (float64, error) {
	compiled, err := e.Compile(expr)
	if err != nil {
		return 0, err
	}

	return compiled.Eval(mode)
}

// Expression is a parsed expression that can be evaluated repeatedly.
type Expression struct {
	source string
	root   node
	prec   uint
}

// Compile validates and parses expr without evaluating it.
func (e *Engine) Compile(expr string) (*Expression, error) {
	if err := validate.Expression(expr); err != nil {
		return nil, validationError(err)
	}

	sanitized := validate.Sanitize(expr)
	root, err := parse(sanitized)
	if err != nil {
		return nil, err
	}

	return &Expression{source: sanitized, root: root, prec: e.prec}, nil
}

// String returns the sanitized source text.
func (x *Expression) String() string {
	return x.source
}

// Eval evaluates the expression in mode.
func (x *Expression) Eval(mode angle.Mode) (result float64, err error) {
	defer func() {
		// big.Float panics with ErrNaN on undefined operations such as Inf-Inf.
		if r := recover(); r != nil {
			result, err = 0, errorf(KindUnknown, "%v", r)
		}
	}()

	ctx := &evalContext{prec: x.prec, mode: mode.Normalize()}
	v, err := x.root.eval(ctx)
	if err != nil {
		return 0, err
	}

	f := toFloat64(v)
	if math.IsNaN(f) {
		return 0, newError(KindNotANumber, x.source)
	}
	if math.IsInf(f, 0) {
		return 0, newError(KindInfiniteResult, x.source)
	}

	return f, nil
}

func validationError(err error) *Error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindValidation, Message: verr.Reason, Detail: verr.Rule.String(), Err: verr}
	}

	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}
