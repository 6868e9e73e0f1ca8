package goalgebra_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ga "github.com/njchilds90/goalgebra"
)

func TestTryMakeSubject(t *testing.T) {
	p, q := ga.Sym('p'), ga.Sym('q')
	cases := []struct {
		name   string
		eq     ga.Equation
		target ga.Term
		want   string
	}{
		{
			"linear",
			ga.Eq(ga.Plus(mono(2, ga.Fac('x', 1)), num(3)), num(7)),
			x(), "x = 2",
		},
		{
			"two unknowns",
			ga.Eq(ga.Plus(mono(3, ga.Fac('p', 1)), mono(2, ga.Fac('q', 1))), num(12)),
			p, "p = (12 - 2q)/3",
		},
		{
			"brackets on both sides",
			ga.Eq(
				ga.Minus(ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), num(4)),
				ga.Minus(num(10), x()),
			),
			x(), "x = 8/3",
		},
		{
			"target on the right",
			ga.Eq(num(7), ga.Plus(mono(2, ga.Fac('x', 1)), num(3))),
			x(), "x = 2",
		},
		{
			"quotient",
			ga.Eq(ga.Durch(x(), num(2)), num(3)),
			x(), "x = 6",
		},
		{
			"target in denominator",
			ga.Eq(y(), ga.Durch(num(1), x())),
			x(), "x = 1/y",
		},
		{
			"clear denominator",
			ga.Eq(ga.Plus(ga.Durch(x(), num(2)), x()), num(3)),
			x(), "x = 2",
		},
		{
			"divide out factor",
			ga.Eq(ga.Mal(num(4), ga.Paren(ga.Minus(q, num(1)))), num(8)),
			q, "q = 3",
		},
		{
			"cofactor divided out",
			ga.Eq(mono(1, ga.Fac('x', 1), ga.Fac('y', 1)), num(6)),
			x(), "x = 6/y",
		},
		{
			"cofactor after moving constants",
			ga.Eq(ga.Plus(mono(2, ga.Fac('q', 1), ga.Fac('y', 1)), num(3)), num(1)),
			q, "q = -1/y",
		},
		{
			"target factored out",
			ga.Eq(ga.Plus(x(), ga.Mal(x(), y())), num(3)),
			x(), "x = 3/(1 + y)",
		},
		{
			"sum denominator cleared",
			ga.Eq(ga.Plus(ga.Durch(x(), ga.Paren(ga.Plus(num(1), y()))), x()), num(3)),
			x(), "x = (3 + 3y)/(2 + y)",
		},
		{
			"scaled target",
			ga.Eq(ga.Plus(mono(4, ga.Fac('x', 1)), y()), num(8)),
			mono(2, ga.Fac('x', 1)), "2x = (8 - y)/2",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.eq.TryMakeSubject(c.target)
			require.NoError(t, err)
			assert.Equal(t, c.want, got.String())
			assert.True(t, got.Left.Equal(c.target))
		})
	}
}

func TestTryMakeSubject_Inequality(t *testing.T) {
	eq := ga.NewEquation(mono(-2, ga.Fac('x', 1)), ga.GreaterThan, num(4))
	got, err := eq.TryMakeSubject(x())
	require.NoError(t, err)
	assert.Equal(t, "x < -2", got.String())

	eq = ga.NewEquation(num(5), ga.LessThan, ga.Plus(x(), num(1)))
	got, err = eq.TryMakeSubject(x())
	require.NoError(t, err)
	assert.Equal(t, "x > 4", got.String())
}

func TestTryMakeSubject_UnknownVariables(t *testing.T) {
	eq := ga.Eq(mono(2, ga.Fac('x', 1)), num(4))
	_, err := eq.TryMakeSubject(ga.Sym('z'))
	require.Error(t, err)

	var unknown *ga.UnknownVariablesError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []ga.Variable{ga.Var('z')}, unknown.Missing)
	assert.True(t, unknown.Equation.Equal(eq))
}

func TestTryMakeSubject_Impossible(t *testing.T) {
	cases := []struct {
		name string
		eq   ga.Equation
	}{
		{"target cancels", ga.Eq(x(), ga.Plus(x(), num(1)))},
		{"quadratic", ga.Eq(ga.Plus(mono(1, ga.Fac('x', 2)), x()), num(3))},
		{"function beside quotient", ga.Eq(ga.Durch(x(), ga.Paren(ga.Plus(num(1), y()))), ga.Plus(ga.Fn("sin", x()), num(1)))},
		{"cofactor holds target", ga.Eq(mono(1, ga.Fac('x', 2), ga.Fac('y', 1)), num(6))},
		{"opaque function", ga.Eq(ga.Fn("sin", x()), num(1))},
		{"power", ga.Eq(ga.Power(num(2), x()), num(8))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.eq.TryMakeSubject(x())
			var impossible *ga.ImpossibleSolutionError
			require.True(t, errors.As(err, &impossible), "got %v", err)
			assert.True(t, impossible.Target.Equal(x()))
			assert.True(t, got.Equal(c.eq), "got %s", got)
		})
	}
}

func TestTryMakeSubject_ConstantTarget(t *testing.T) {
	_, err := ga.Eq(x(), num(1)).TryMakeSubject(num(1))
	var impossible *ga.ImpossibleSolutionError
	assert.True(t, errors.As(err, &impossible))
}

func TestTryMakeSubjectTrace(t *testing.T) {
	eq := ga.Eq(
		ga.Minus(ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), num(4)),
		ga.Minus(num(10), x()),
	)
	var steps []ga.Step
	got, err := eq.TryMakeSubjectTrace(x(), func(s ga.Step) { steps = append(steps, s) })
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	assert.Equal(t, ga.StepSelectSide, steps[0].Kind)
	assert.Equal(t, ga.StepReconcile, steps[len(steps)-1].Kind)
	assert.True(t, steps[len(steps)-1].Equation.Equal(got))

	var kinds []ga.StepKind
	for _, s := range steps {
		kinds = append(kinds, s.Kind)
	}
	assert.Contains(t, kinds, ga.StepGather)
	assert.Contains(t, kinds, ga.StepExpand)
	assert.Contains(t, kinds, ga.StepMoveTerms)
}

func TestRearranger_MaxSteps(t *testing.T) {
	eq := ga.Eq(
		ga.Minus(ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), num(4)),
		ga.Minus(num(10), x()),
	)
	_, err := ga.Rearranger{MaxSteps: 1}.MakeSubject(eq, x())
	var impossible *ga.ImpossibleSolutionError
	assert.True(t, errors.As(err, &impossible))

	got, err := ga.Rearranger{MaxSteps: 10}.MakeSubject(eq, x())
	require.NoError(t, err)
	assert.Equal(t, "x = 8/3", got.String())
}

func TestTryMakeSubject_FailureKeepsEquation(t *testing.T) {
	eq := ga.Eq(ga.Fn("sin", x()), num(1))
	got, err := eq.TryMakeSubject(x())
	require.Error(t, err)
	assert.Equal(t, "sin(x) = 1", got.String())

	got, err = eq.TryMakeSubject(ga.Sym('z'))
	require.Error(t, err)
	assert.Equal(t, "sin(x) = 1", got.String())

	assert.Equal(t, "? = ?", ga.Equation{}.String())
	assert.Equal(t, "? = ?", ga.Equation{}.LaTeX())
}

func TestRearranger_MaxNodes(t *testing.T) {
	eq := ga.Eq(
		ga.Minus(ga.Mal(num(2), ga.Paren(ga.Plus(x(), num(3)))), num(4)),
		ga.Minus(num(10), x()),
	)
	_, err := ga.Rearranger{MaxNodes: 4}.MakeSubject(eq, x())
	var impossible *ga.ImpossibleSolutionError
	assert.True(t, errors.As(err, &impossible))
}

func TestRearranger_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eq := ga.Eq(ga.Plus(mono(2, ga.Fac('x', 1)), num(3)), num(7))
	got, err := ga.Rearranger{}.MakeSubjectContext(ctx, eq, x())
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, got.Equal(eq))
}

func TestRearranger_ClearsSumDenominatorOnce(t *testing.T) {
	eq := ga.Eq(ga.Plus(ga.Durch(x(), ga.Paren(ga.Plus(num(1), y()))), x()), num(3))
	var steps []ga.Step
	got, err := ga.Rearranger{Observe: func(s ga.Step) { steps = append(steps, s) }}.MakeSubject(eq, x())
	require.NoError(t, err)

	cleared := 0
	for _, s := range steps {
		if s.Kind == ga.StepClearDenominator {
			cleared++
			assert.Less(t, ga.Size(s.Equation.Left)+ga.Size(s.Equation.Right), 16, "%s", s.Equation)
		}
	}
	assert.Equal(t, 1, cleared)
	assert.Equal(t, ga.StepReconcile, steps[len(steps)-1].Kind)
	assert.Less(t, ga.Size(got.Right), 16)
}
