package goalgebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ga "github.com/njchilds90/goalgebra"
)

// ============================================================
// Rendering
// ============================================================

func TestBinary_String(t *testing.T) {
	q := ga.Sym('q')
	cases := []struct {
		name string
		expr ga.Expr
		want string
	}{
		{"plus", ga.Plus(x(), num(3)), "x + 3"},
		{"minus", ga.Minus(num(10), x()), "10 - x"},
		{"mal bare left", ga.Mal(num(2), ga.Plus(x(), num(3))), "2(x + 3)"},
		{"mal nested right", ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), "2(x + 3)"},
		{"mal negative left", ga.Mal(num(-2), x()), "(-2)(x)"},
		{"mal compound left", ga.Mal(ga.Plus(x(), num(1)), y()), "(x + 1)(y)"},
		{"durch terms", ga.Durch(num(8), num(3)), "8/3"},
		{"durch sum numerator", ga.Durch(ga.Minus(num(12), mono(2, ga.Fac('q', 1))), num(3)), "(12 - 2q)/3"},
		{"durch sum denominator", ga.Durch(q, ga.Plus(x(), y())), "q/(x + y)"},
		{"pow atomic", ga.Power(x(), num(2)), "x^2"},
		{"pow compound base", ga.Power(ga.Plus(x(), num(1)), num(2)), "(x + 1)^2"},
		{"pow non-atomic term", ga.Power(mono(2, ga.Fac('x', 1)), y()), "(2x)^y"},
		{"root", ga.Radical(num(2), x()), "2√x"},
		{"root compound", ga.Radical(num(3), ga.Plus(x(), num(1))), "3√(x + 1)"},
		{"nested", ga.Paren(ga.Plus(x(), y())), "(x + y)"},
		{"function", ga.Fn("sin", x()), "sin(x)"},
		{"negated function", ga.Fn("sin", x()).Negate(), "-sin(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.expr.String())
		})
	}
}

func TestBinary_LaTeX(t *testing.T) {
	assert.Equal(t, `\frac{x}{2}`, ga.Durch(x(), num(2)).LaTeX())
	assert.Equal(t, `\sqrt{x}`, ga.Radical(num(2), x()).LaTeX())
	assert.Equal(t, `\sqrt[3]{x}`, ga.Radical(num(3), x()).LaTeX())
	assert.Equal(t, `x^{2}`, ga.Power(x(), num(2)).LaTeX())
	assert.Equal(t, `2\left(x + 1\right)`, ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(1)))).LaTeX())
	assert.Equal(t, `\sin\left(x\right)`, ga.Fn("sin", x()).LaTeX())
}

func TestExpr_Equal(t *testing.T) {
	a := ga.Plus(x(), ga.Mal(num(2), y()))
	b := ga.Plus(x(), ga.Mal(num(2), y()))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(ga.Minus(x(), ga.Mal(num(2), y()))))
	assert.False(t, a.Equal(x()))
	assert.False(t, ga.Paren(x()).Equal(x()))
	assert.False(t, ga.Fn("sin", x()).Equal(ga.Fn("cos", x())))
}

func TestClone_DeepCopy(t *testing.T) {
	orig := ga.Plus(ga.Paren(ga.Minus(x(), num(1))), ga.Fn("ln", y()))
	cp := ga.Clone(orig).(*ga.Binary)
	assert.True(t, cp.Equal(orig))
	assert.NotSame(t, orig, cp)
	assert.NotSame(t, orig.Left, cp.Left)
	assert.NotSame(t, orig.Right, cp.Right)
}

func TestOperator_RoundTrip(t *testing.T) {
	for _, op := range []ga.Operator{ga.OpPlus, ga.OpMinus, ga.OpMal, ga.OpDurch, ga.OpPow, ga.OpRoot} {
		back, ok := ga.ParseOperator(op.String())
		assert.True(t, ok)
		assert.Equal(t, op, back)
	}
	_, ok := ga.ParseOperator("times")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "constant", ga.Describe(num(3)))
	assert.Equal(t, "term", ga.Describe(x()))
	assert.Equal(t, "durch", ga.Describe(ga.Durch(x(), y())))
	assert.Equal(t, "nested", ga.Describe(ga.Paren(x())))
	assert.Equal(t, "custom", ga.Describe(ga.Fn("sin", x())))
}
