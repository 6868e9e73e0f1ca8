package goalgebra_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	ga "github.com/njchilds90/goalgebra"
)

func TestCombineTerms(t *testing.T) {
	sin := ga.Fn("sin", x())
	cases := []struct {
		name string
		expr ga.Expr
		want string
	}{
		{"like terms merge", ga.Plus(mono(2, ga.Fac('x', 1)), mono(3, ga.Fac('x', 1))), "5x"},
		{"unlike terms stay", ga.Plus(mono(2, ga.Fac('x', 1)), mono(3, ga.Fac('y', 1))), "2x + 3y"},
		{"constants first", ga.Plus(x(), num(3)), "3 + x"},
		{"cancel to zero", ga.Minus(x(), x()), "0"},
		{"negative leading term", ga.Plus(mono(-2, ga.Fac('x', 1)), y().Neg()), "-2x - y"},
		{"minus distributes over right sum", ga.Minus(x(), ga.Plus(y(), x())), "-1y"},
		{"zero pruned", ga.Plus(ga.Plus(x(), num(0)), num(0)), "x"},
		{"powers ordered", ga.Plus(mono(1, ga.Fac('x', 2)), ga.Plus(x(), num(1))), "1 + x + x^2"},
		{"custom leaves counted", ga.Plus(sin, sin), "2(sin(x))"},
		{"custom leaves cancel", ga.Plus(sin, sin.Negate()), "0"},
		{"custom after terms", ga.Plus(sin, x()), "x + sin(x)"},
		{"negative custom first", ga.Minus(num(0), sin), "-sin(x)"},
		{"leftovers first", ga.Plus(x(), ga.Mal(num(2), ga.Paren(ga.Plus(y(), num(1))))), "2(1 + y) + x"},
		{"non-sum recurses", ga.Durch(ga.Plus(x(), x()), num(3)), "2x/3"},
		{"lone term unchanged", mono(4, ga.Fac('z', 1)), "4z"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ga.CombineTerms(c.expr).String())
		})
	}
}

func TestCombineTerms_Idempotent(t *testing.T) {
	sin := ga.Fn("sin", x())
	exprs := []ga.Expr{
		ga.Plus(mono(2, ga.Fac('x', 1)), ga.Minus(num(3), mono(5, ga.Fac('x', 1)))),
		ga.Minus(ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), num(4)),
		ga.Minus(num(0), ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3))))),
		ga.Plus(ga.Minus(num(0), sin), ga.Minus(y(), sin)),
		ga.Minus(num(1), ga.Power(x(), y())),
		ga.Minus(num(0), ga.Power(x(), y())),
		ga.Plus(ga.Durch(num(1), x()), mono(-3, ga.Fac('y', 2))),
		ga.Minus(mono(3, ga.Fac('x', 2)), ga.Mal(ga.Paren(ga.Minus(num(0), num(2))), sin)),
		ga.Plus(ga.Mal(ga.Paren(ga.Minus(x(), x())), sin.Negate()), ga.Minus(x(), ga.Paren(ga.Paren(num(-3))))),
	}
	for _, e := range exprs {
		once := ga.CombineTerms(e)
		twice := ga.CombineTerms(once)
		assert.True(t, once.Equal(twice), "%s: %s vs %s", e, once, twice)
	}
}

func TestCombineTerms_ConstantTimesCustomAfterCombining(t *testing.T) {
	sin := ga.Fn("sin", x())
	cases := []struct {
		name string
		expr ga.Expr
		want string
	}{
		{"folded coefficient merges", ga.Plus(ga.Mal(ga.Paren(ga.Minus(num(0), num(2))), sin), ga.Mal(num(5), sin)), "3(sin(x))"},
		{"subtracted folded coefficient", ga.Minus(mono(3, ga.Fac('x', 2)), ga.Mal(ga.Paren(ga.Minus(num(0), num(2))), sin)), "3x^2 + 2(sin(x))"},
		{"zero coefficient pruned", ga.Plus(ga.Mal(ga.Paren(ga.Minus(x(), x())), sin.Negate()), x()), "x"},
		{"zero product pruned", ga.Plus(ga.Mal(y(), ga.Paren(ga.Minus(x(), x()))), x()), "x"},
		{"zero quotient pruned", ga.Minus(x(), ga.Durch(ga.Paren(ga.Minus(y(), y())), x())), "x"},
		{"zero parenthesis pruned", ga.Plus(ga.Paren(ga.Minus(y(), y())), x()), "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ga.CombineTerms(c.expr).String())
		})
	}
}

// randomTree builds a seeded expression over sums, products, quotients and
// parentheses of small monomials and sin(x).
func randomTree(r *rand.Rand, depth int) ga.Expr {
	if depth == 0 || r.Intn(4) == 0 {
		return randomLeaf(r)
	}
	switch r.Intn(5) {
	case 0:
		return ga.Plus(randomTree(r, depth-1), randomTree(r, depth-1))
	case 1:
		return ga.Minus(randomTree(r, depth-1), randomTree(r, depth-1))
	case 2:
		return ga.Mal(randomTree(r, depth-1), randomTree(r, depth-1))
	case 3:
		return ga.Durch(randomTree(r, depth-1), randomTree(r, depth-1))
	}
	return ga.Paren(randomTree(r, depth-1))
}

func randomLeaf(r *rand.Rand) ga.Expr {
	if r.Intn(6) == 0 {
		sin := ga.Fn("sin", x())
		if r.Intn(2) == 0 {
			return sin.Negate()
		}
		return sin
	}
	return mono(int64(r.Intn(7)-3), ga.Fac('x', int64(r.Intn(3))), ga.Fac('y', int64(r.Intn(3))))
}

func TestCombineTerms_IdempotentOnRandomTrees(t *testing.T) {
	r := rand.New(rand.NewSource(20260401))
	for i := 0; i < 5000; i++ {
		e := randomTree(r, 5)
		once := ga.CombineTerms(e)
		twice := ga.CombineTerms(once)
		if !assert.True(t, once.Equal(twice), "%s: %s vs %s", e, once, twice) {
			return
		}
	}
}
