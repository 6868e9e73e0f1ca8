package goalgebra

// ============================================================
// Term: coefficient times a product of variable powers
// ============================================================

// Term is an immutable monomial. A zero coefficient always carries no
// variables, so the zero value is the constant 0.
type Term struct {
	coef Num
	vars Variables
}

func NewTerm(coef Num, vars Variables) Term {
	if coef.IsZero() {
		return Term{coef: N(0)}
	}
	return Term{coef: coef, vars: vars}
}

func Const(n Num) Term { return NewTerm(n, Variables{}) }

// Sym is the term 1·letter.
func Sym(letter rune) Term { return Symbol(Var(letter)) }

func Symbol(v Variable) Term {
	return Term{coef: N(1), vars: Variables{}.With(v, N(1))}
}

// Fac is a single factor of a monomial, letter^exp.
func Fac(letter rune, exp int64) VarPower { return VarPower{Var: Var(letter), Exp: N(exp)} }

// Monomial builds coef·f1·f2·…; repeated variables multiply.
func Monomial(coef Num, factors ...VarPower) Term {
	return NewTerm(coef, NewVariables(factors...))
}

func (t Term) Coefficient() Num     { return t.coef }
func (t Term) Variables() Variables { return t.vars }
func (t Term) IsConstant() bool     { return t.vars.IsEmpty() }
func (t Term) IsZero() bool         { return t.coef.IsZero() }

// SameSignature reports whether t and o differ only in coefficient.
func (t Term) SameSignature(o Term) bool { return t.vars.Equal(o.vars) }

func (t Term) String() string {
	if t.vars.IsEmpty() {
		return t.coef.String()
	}
	if t.coef.IsOne() {
		return t.vars.String()
	}
	return t.coef.String() + t.vars.String()
}

func (t Term) LaTeX() string {
	if t.vars.IsEmpty() {
		return t.coef.LaTeX()
	}
	if t.coef.IsOne() {
		return t.vars.LaTeX()
	}
	return t.coef.LaTeX() + t.vars.LaTeX()
}

func (t Term) Equal(other Expr) bool {
	o, ok := other.(Term)
	return ok && t.coef.Equal(o.coef) && t.vars.Equal(o.vars)
}

// ============================================================
// Term arithmetic
// ============================================================

// Add merges like terms, otherwise it builds a Plus node.
func (t Term) Add(o Term) Expr {
	if t.SameSignature(o) {
		return NewTerm(t.coef.Add(o.coef), t.vars)
	}
	return Plus(t, o)
}

// Sub merges like terms, otherwise it builds a Minus node.
func (t Term) Sub(o Term) Expr {
	if t.SameSignature(o) {
		return NewTerm(t.coef.Sub(o.coef), t.vars)
	}
	return Minus(t, o)
}

func (t Term) Mul(o Term) Term {
	return NewTerm(t.coef.Mul(o.coef), t.vars.Merge(o.vars))
}

func (t Term) Neg() Term { return NewTerm(t.coef.Neg(), t.vars) }

// Div cancels shared variables and reduces the coefficients by their gcd.
// Division by zero is left as an unevaluated Durch node.
func (t Term) Div(o Term) Expr {
	if o.IsZero() {
		return Durch(t, o)
	}
	if t.IsZero() {
		return Const(N(0))
	}
	if o.IsConstant() && o.coef.IsOne() {
		return t
	}
	num, den := t.vars, o.vars
	o.vars.Each(func(v Variable, exp Num) {
		if !num.Has(v) {
			return
		}
		diff := num.Get(v).Sub(exp)
		switch diff.Sign() {
		case 1:
			num, den = num.With(v, diff), den.Without(v)
		case -1:
			num, den = num.Without(v), den.With(v, diff.Neg())
		default:
			num, den = num.Without(v), den.Without(v)
		}
	})
	a, b := t.coef, o.coef
	if g := GCD(a, b); !g.IsZero() {
		a, b = a.Div(g), b.Div(g)
	}
	if b.IsNegative() {
		a, b = a.Neg(), b.Neg()
	}
	if den.IsEmpty() && b.IsOne() {
		return NewTerm(a, num)
	}
	return Durch(NewTerm(a, num), NewTerm(b, den))
}

// Pow evaluates t^o. A constant exponent scales the exponents and raises the
// coefficient; a symbolic exponent yields Pow nodes per factor.
func (t Term) Pow(o Term) Expr {
	if o.IsConstant() {
		e := o.coef
		switch {
		case e.IsOne():
			return t
		case e.IsZero():
			return Const(N(1))
		}
		c, ok := t.coef.Pow(e)
		if !ok {
			return Power(t, o)
		}
		return NewTerm(c, t.vars.Scale(e))
	}
	var acc Expr
	mul := func(e Expr) {
		if acc == nil {
			acc = e
			return
		}
		acc = Mal(acc, e)
	}
	if !t.coef.IsOne() || t.vars.IsEmpty() {
		mul(Power(Const(t.coef), o))
	}
	t.vars.Each(func(v Variable, exp Num) {
		mul(Power(Symbol(v), o.Mul(Const(exp))))
	})
	return acc
}
