package goalgebra

import (
	"fmt"
	"strings"
)

// ============================================================
// Equation
// ============================================================

type Relation int

const (
	Equal Relation = iota
	GreaterThan
	LessThan
)

func (r Relation) String() string {
	switch r {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	}
	return "="
}

func (r Relation) LaTeX() string { return r.String() }

// Flip reverses an inequality. Equal is unchanged.
func (r Relation) Flip() Relation {
	switch r {
	case GreaterThan:
		return LessThan
	case LessThan:
		return GreaterThan
	}
	return Equal
}

// ParseRelation accepts "=", ">", "<" and their names.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "=", "eq", "equal", "":
		return Equal, nil
	case ">", "gt", "greater_than":
		return GreaterThan, nil
	case "<", "lt", "less_than":
		return LessThan, nil
	}
	return Equal, fmt.Errorf("unknown relation %q", s)
}

type Equation struct {
	Left     Expr
	Relation Relation
	Right    Expr
}

func Eq(left, right Expr) Equation { return Equation{Left: left, Relation: Equal, Right: right} }

func NewEquation(left Expr, rel Relation, right Expr) Equation {
	return Equation{Left: left, Relation: rel, Right: right}
}

// String renders the equation. A missing side renders as "?".
func (e Equation) String() string {
	return sideString(e.Left, Expr.String) + " " + e.Relation.String() + " " + sideString(e.Right, Expr.String)
}

func (e Equation) LaTeX() string {
	return sideString(e.Left, Expr.LaTeX) + " " + e.Relation.LaTeX() + " " + sideString(e.Right, Expr.LaTeX)
}

func sideString(e Expr, render func(Expr) string) string {
	if e == nil {
		return "?"
	}
	return render(e)
}

func (e Equation) Equal(o Equation) bool {
	return e.Relation == o.Relation && e.Left.Equal(o.Left) && e.Right.Equal(o.Right)
}

func (e Equation) Clone() Equation {
	return Equation{Left: Clone(e.Left), Relation: e.Relation, Right: Clone(e.Right)}
}

// Substitute replaces v with value on both sides.
func (e Equation) Substitute(v Variable, value Expr) Equation {
	return Equation{Left: Substitute(e.Left, v, value), Relation: e.Relation, Right: Substitute(e.Right, v, value)}
}

// FreeVariables returns the variables of both sides in Variable order.
func (e Equation) FreeVariables() []Variable {
	return FreeVariables(Plus(e.Left, e.Right))
}

// Residual returns Left - Right with like terms merged.
func (e Equation) Residual() Expr { return Sub(e.Left, e.Right) }

// ============================================================
// Rearrangement errors
// ============================================================

// UnknownVariablesError reports target variables that do not occur in the
// equation.
type UnknownVariablesError struct {
	Equation Equation
	Missing  []Variable
}

func (e *UnknownVariablesError) Error() string {
	names := make([]string, len(e.Missing))
	for i, v := range e.Missing {
		names[i] = v.String()
	}
	return fmt.Sprintf("unknown variables %s in %s", strings.Join(names, ", "), e.Equation)
}

// ImpossibleSolutionError reports that the target could not be isolated.
type ImpossibleSolutionError struct {
	Equation Equation
	Target   Term
}

func (e *ImpossibleSolutionError) Error() string {
	return fmt.Sprintf("cannot make %s the subject of %s", e.Target, e.Equation)
}

// NonDivisibleCoefficientsError reports a coefficient ratio that does not
// divide exactly. Rearrangement always divides and never returns it.
type NonDivisibleCoefficientsError struct {
	Equation Equation
	Target   Term
	Divisor  Num
}

func (e *NonDivisibleCoefficientsError) Error() string {
	return fmt.Sprintf("coefficients of %s do not divide by %s in %s", e.Target, e.Divisor, e.Equation)
}
