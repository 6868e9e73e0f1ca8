package goalgebra

import (
	"math"
	"sort"
)

// ============================================================
// Variable analysis
// ============================================================

// argumented is implemented by custom leaves that wrap sub-expressions.
type argumented interface {
	Args() []Expr
}

func (f *Function) Args() []Expr { return []Expr{f.Arg} }

// eachTerm calls fn for every Term leaf in e, including leaves inside
// function arguments.
func eachTerm(e Expr, fn func(Term)) {
	Walk(e, func(n Expr) {
		switch v := n.(type) {
		case Term:
			fn(v)
		case argumented:
			for _, arg := range v.Args() {
				eachTerm(arg, fn)
			}
		}
	})
}

// FreeVariables returns the distinct variables of e in Variable order.
func FreeVariables(e Expr) []Variable {
	seen := map[Variable]struct{}{}
	eachTerm(e, func(t Term) {
		t.vars.Each(func(v Variable, _ Num) { seen[v] = struct{}{} })
	})
	out := make([]Variable, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// ContainsAll reports whether every one of vars occurs in e.
func ContainsAll(e Expr, vars ...Variable) bool {
	free := FreeVariables(e)
	for _, v := range vars {
		if !containsVariable(free, v) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one of vars occurs in e.
func ContainsAny(e Expr, vars ...Variable) bool {
	found := false
	eachTerm(e, func(t Term) {
		if !found && termHasAny(t, vars) {
			found = true
		}
	})
	return found
}

// Size counts the nodes of e, including function arguments.
func Size(e Expr) int {
	n := 0
	Walk(e, func(node Expr) {
		n++
		if f, ok := node.(argumented); ok {
			for _, arg := range f.Args() {
				n += Size(arg)
			}
		}
	})
	return n
}

// CountOccurrences counts the term leaves of e that carry any of vars.
func CountOccurrences(e Expr, vars ...Variable) int {
	n := 0
	eachTerm(e, func(t Term) {
		if termHasAny(t, vars) {
			n++
		}
	})
	return n
}

func termHasAny(t Term, vars []Variable) bool {
	for _, v := range vars {
		if t.vars.Has(v) {
			return true
		}
	}
	return false
}

func containsVariable(vs []Variable, v Variable) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

// ============================================================
// Substitution
// ============================================================

// maxSubstituteExpansion bounds how far value^k is expanded when value is
// not a single term.
const maxSubstituteExpansion = 8

// Substitute replaces every occurrence of v in e with value and merges like
// terms in the result.
func Substitute(e Expr, v Variable, value Expr) Expr {
	return CombineTerms(substitute(e, v, value))
}

func substitute(e Expr, v Variable, value Expr) Expr {
	switch n := e.(type) {
	case Term:
		if !n.vars.Has(v) {
			return n
		}
		return substituteTerm(n, v, value)
	case *Binary:
		return &Binary{Op: n.Op, Left: substitute(n.Left, v, value), Right: substitute(n.Right, v, value)}
	case *Nested:
		return Paren(substitute(n.Inner, v, value))
	case *Function:
		return &Function{Name: n.Name, Arg: Substitute(n.Arg, v, value), Negated: n.Negated}
	}
	return e
}

func substituteTerm(t Term, v Variable, value Expr) Expr {
	k := t.vars.Get(v)
	rest := NewTerm(t.coef, t.vars.Without(v))
	var powered Expr
	switch val := unwrap(value).(type) {
	case Term:
		powered = val.Pow(Const(k))
	default:
		if k.IsInteger() && k.IsPositive() && k.CmpInt(maxSubstituteExpansion) <= 0 {
			powered = val
			for i := int64(1); k.CmpInt(i) > 0; i++ {
				powered = Mul(powered, val)
			}
		} else {
			powered = Power(Paren(val), Const(k))
		}
	}
	return Mul(rest, powered)
}

// ============================================================
// Numeric evaluation
// ============================================================

// Eval evaluates e with the given variable values. ok is false when a
// variable is unbound, a division by zero occurs, or a node cannot be
// evaluated exactly or numerically.
func Eval(e Expr, values map[Variable]Num) (Num, bool) {
	switch n := e.(type) {
	case Term:
		result := n.coef
		ok := true
		n.vars.Each(func(v Variable, exp Num) {
			if !ok {
				return
			}
			x, bound := values[v]
			if !bound {
				ok = false
				return
			}
			p, pok := x.Pow(exp)
			if !pok {
				ok = false
				return
			}
			result = result.Mul(p)
		})
		return result, ok
	case *Nested:
		return Eval(n.Inner, values)
	case *Binary:
		l, ok := Eval(n.Left, values)
		if !ok {
			return Num{}, false
		}
		r, ok := Eval(n.Right, values)
		if !ok {
			return Num{}, false
		}
		switch n.Op {
		case OpPlus:
			return l.Add(r), true
		case OpMinus:
			return l.Sub(r), true
		case OpMal:
			return l.Mul(r), true
		case OpDurch:
			if r.IsZero() {
				return Num{}, false
			}
			return l.Div(r), true
		case OpPow:
			return l.Pow(r)
		case OpRoot:
			if l.IsZero() {
				return Num{}, false
			}
			return r.Pow(N(1).Div(l))
		}
	case *Function:
		x, ok := Eval(n.Arg, values)
		if !ok {
			return Num{}, false
		}
		f, ok := applyFunction(n.Name, x.Float64())
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return Num{}, false
		}
		result := NFloat(f)
		if n.Negated {
			result = result.Neg()
		}
		return result, true
	}
	return Num{}, false
}

func applyFunction(name string, x float64) (float64, bool) {
	switch name {
	case "sin":
		return math.Sin(x), true
	case "cos":
		return math.Cos(x), true
	case "tan":
		return math.Tan(x), true
	case "exp":
		return math.Exp(x), true
	case "ln":
		return math.Log(x), true
	case "log":
		return math.Log10(x), true
	case "sqrt":
		return math.Sqrt(x), true
	case "abs":
		return math.Abs(x), true
	}
	return 0, false
}
