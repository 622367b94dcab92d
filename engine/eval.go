package engine

import (
	"math"
	"math/big"

	"github.com/arloliu/abacus/angle"
)

// maxExactExponent bounds integer powers computed by repeated squaring.
const maxExactExponent = 1 << 20

// evalContext carries per-call settings through the tree.
type evalContext struct {
	prec uint
	mode angle.Mode
}

func (ctx *evalContext) newFloat() *big.Float {
	return new(big.Float).SetPrec(ctx.prec)
}

// fromFloat64 lifts a float64 math result, rejecting NaN and infinities.
func (ctx *evalContext) fromFloat64(v float64, detail string) (*big.Float, error) {
	if math.IsNaN(v) {
		return nil, newError(KindNotANumber, detail)
	}
	if math.IsInf(v, 0) {
		return nil, newError(KindInfiniteResult, detail)
	}

	return ctx.newFloat().SetFloat64(v), nil
}

// finite rejects big.Float overflow to infinity so later operations never see ±Inf.
func finite(v *big.Float, detail string) (*big.Float, error) {
	if v.IsInf() {
		return nil, newError(KindInfiniteResult, detail)
	}

	return v, nil
}

func toFloat64(v *big.Float) float64 {
	f, _ := v.Float64()
	return f
}

func (n *numberNode) eval(ctx *evalContext) (*big.Float, error) {
	v, ok := ctx.newFloat().SetString(n.text)
	if !ok {
		return nil, errorf(KindSyntax, "malformed number %q", n.text)
	}

	return finite(v, n.text)
}

func (n *constNode) eval(ctx *evalContext) (*big.Float, error) {
	c, _ := lookupConstant(n.name)
	v, _ := ctx.newFloat().SetString(c)

	return v, nil
}

func (n *unaryNode) eval(ctx *evalContext) (*big.Float, error) {
	v, err := n.operand.eval(ctx)
	if err != nil {
		return nil, err
	}
	if n.negate {
		v.Neg(v)
	}

	return v, nil
}

func (n *percentNode) eval(ctx *evalContext) (*big.Float, error) {
	v, err := n.operand.eval(ctx)
	if err != nil {
		return nil, err
	}

	return v.Quo(v, ctx.newFloat().SetInt64(100)), nil
}

func (n *binaryNode) eval(ctx *evalContext) (*big.Float, error) {
	left, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}

	z := ctx.newFloat()
	switch n.op {
	case tokenPlus:
		z.Add(left, right)
	case tokenMinus:
		z.Sub(left, right)
	case tokenStar:
		z.Mul(left, right)
	case tokenSlash:
		if right.Sign() == 0 {
			return nil, newError(KindDivisionByZero, "division")
		}
		z.Quo(left, right)
	case tokenPercent:
		return ctx.mod(left, right)
	case tokenCaret:
		return ctx.pow(left, right)
	default:
		return nil, errorf(KindSyntax, "unknown operator %s", n.op)
	}

	return finite(z, n.op.String())
}

// mod computes x - y*trunc(x/y); the result takes the sign of x.
func (ctx *evalContext) mod(x, y *big.Float) (*big.Float, error) {
	if y.Sign() == 0 {
		return nil, newError(KindDivisionByZero, "modulo")
	}

	q := ctx.newFloat().Quo(x, y)
	if !q.IsInt() {
		qi, _ := q.Int(nil)
		q.SetInt(qi)
	}

	z := ctx.newFloat().Mul(y, q)
	z.Sub(x, z)

	return finite(z, "modulo")
}

// pow raises x to y. Integer exponents up to maxExactExponent are computed at
// full precision; everything else goes through math.Pow.
func (ctx *evalContext) pow(x, y *big.Float) (*big.Float, error) {
	if y.IsInt() {
		n, acc := y.Int64()
		if acc == big.Exact && n >= -maxExactExponent && n <= maxExactExponent {
			return ctx.intPow(x, n)
		}
	}

	return ctx.fromFloat64(math.Pow(toFloat64(x), toFloat64(y)), "power")
}

func (ctx *evalContext) intPow(x *big.Float, n int64) (*big.Float, error) {
	if n < 0 && x.Sign() == 0 {
		return nil, newError(KindDivisionByZero, "zero to a negative power")
	}

	negative := n < 0
	if negative {
		n = -n
	}

	result := ctx.newFloat().SetInt64(1)
	base := ctx.newFloat().Set(x)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, base)
			if result.IsInf() {
				break
			}
		}
		n >>= 1
		if n > 0 {
			base.Mul(base, base)
		}
	}

	if negative && !result.IsInf() {
		result.Quo(ctx.newFloat().SetInt64(1), result)
	}

	return finite(result, "power")
}

func (n *callNode) eval(ctx *evalContext) (*big.Float, error) {
	args := make([]*big.Float, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return n.fn.call(ctx, args)
}
