package goalgebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ga "github.com/njchilds90/goalgebra"
)

func x() ga.Term { return ga.Sym('x') }
func y() ga.Term { return ga.Sym('y') }

func mono(c int64, fs ...ga.VarPower) ga.Term { return ga.Monomial(ga.N(c), fs...) }
func num(c int64) ga.Term                   { return ga.Const(ga.N(c)) }

// ============================================================
// Term rendering
// ============================================================

func TestTerm_String(t *testing.T) {
	cases := []struct {
		term ga.Term
		want string
	}{
		{mono(3, ga.Fac('x', 2), ga.Fac('y', 1)), "3x^2y"},
		{x(), "x"},
		{x().Neg(), "-1x"},
		{num(0), "0"},
		{ga.NewTerm(ga.N(0), ga.NewVariables(ga.Fac('x', 1))), "0"},
		{ga.Monomial(ga.F(5, 2), ga.Fac('x', 1)), "2.5x"},
		{mono(-4, ga.Fac('x', -1)), "-4x^-1"},
		{ga.Symbol(ga.LabeledVar('x', "1")), "x{1}"},
		{num(-3), "-3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.term.String())
	}
}

func TestTerm_ZeroHasNoVariables(t *testing.T) {
	z := ga.NewTerm(ga.N(0), ga.NewVariables(ga.Fac('x', 2)))
	assert.True(t, z.IsConstant())
	assert.True(t, z.Equal(num(0)))
	assert.True(t, ga.Term{}.Equal(num(0)))
}

func TestTerm_LaTeX(t *testing.T) {
	assert.Equal(t, `\frac{1}{3}x^{2}`, ga.Monomial(ga.F(1, 3), ga.Fac('x', 2)).LaTeX())
	assert.Equal(t, "-1y", y().Neg().LaTeX())
}

// ============================================================
// Term arithmetic
// ============================================================

func TestTerm_AddLikeTerms(t *testing.T) {
	assert.Equal(t, "5x", mono(2, ga.Fac('x', 1)).Add(mono(3, ga.Fac('x', 1))).String())
	assert.Equal(t, "2x + 3y", mono(2, ga.Fac('x', 1)).Add(mono(3, ga.Fac('y', 1))).String())
}

func TestTerm_Sub(t *testing.T) {
	assert.Equal(t, "0", mono(2, ga.Fac('x', 1)).Sub(mono(2, ga.Fac('x', 1))).String())
	assert.Equal(t, "x - y", x().Sub(y()).String())
}

func TestTerm_Mul(t *testing.T) {
	p := mono(2, ga.Fac('x', 1)).Mul(mono(3, ga.Fac('x', 1), ga.Fac('y', 1)))
	assert.Equal(t, "6x^2y", p.String())
	assert.Equal(t, "1", mono(1, ga.Fac('x', 1)).Mul(mono(1, ga.Fac('x', -1))).String())
}

func TestTerm_Div(t *testing.T) {
	cases := []struct {
		name string
		a, b ga.Term
		want string
	}{
		{"exact", mono(6, ga.Fac('x', 2), ga.Fac('y', 1)), mono(3, ga.Fac('x', 1)), "2xy"},
		{"remaining denominator", mono(4, ga.Fac('x', 1)), mono(6, ga.Fac('x', 2)), "2/3x"},
		{"non-divisible constants", num(8), num(3), "8/3"},
		{"negative divisor", num(4), num(-2), "-2"},
		{"negative divisor kept", x(), num(-3), "-1x/3"},
		{"by one", x(), num(1), "x"},
		{"by zero", x(), num(0), "x/0"},
		{"zero dividend", num(0), y(), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Div(c.b).String())
		})
	}
}

func TestTerm_Pow(t *testing.T) {
	assert.Equal(t, "8x^3", mono(2, ga.Fac('x', 1)).Pow(num(3)).String())
	assert.Equal(t, "x", mono(1, ga.Fac('x', 2)).Pow(ga.Const(ga.F(1, 2))).String())
	assert.Equal(t, "1", mono(5, ga.Fac('x', 1)).Pow(num(0)).String())
	assert.True(t, mono(5, ga.Fac('x', 1)).Pow(num(1)).Equal(mono(5, ga.Fac('x', 1))))
	assert.Equal(t, "x^y", x().Pow(y()).String())
	assert.Equal(t, "(2^y)(x^y)", mono(2, ga.Fac('x', 1)).Pow(y()).String())
	assert.Equal(t, "0^(-1)", num(0).Pow(num(-1)).String())
}
