package goalgebra

// ============================================================
// Expression arithmetic
// ============================================================

// Add returns a + b with like terms merged.
func Add(a, b Expr) Expr { return CombineTerms(Plus(a, b)) }

// Sub returns a - b with like terms merged.
func Sub(a, b Expr) Expr { return CombineTerms(Minus(a, b)) }

// Neg negates e structurally: -(a+b) = -a - b, -(a-b) = -a + b, products and
// quotients negate their left operand, powers and roots gain a -1 factor.
func Neg(e Expr) Expr {
	switch v := e.(type) {
	case Term:
		return v.Neg()
	case Custom:
		return v.Negate()
	case *Nested:
		return Paren(Neg(v.Inner))
	case *Binary:
		switch v.Op {
		case OpPlus:
			return Minus(Neg(v.Left), v.Right)
		case OpMinus:
			return Plus(Neg(v.Left), v.Right)
		case OpMal:
			if t, ok := v.Left.(Term); ok && t.IsConstant() && t.coef.IsNegOne() && isPowOrRoot(v.Right) {
				return v.Right
			}
			return Mal(Neg(v.Left), v.Right)
		case OpDurch:
			return Durch(Neg(v.Left), v.Right)
		default:
			return Mal(Const(N(-1)), v)
		}
	}
	return e
}

func isPowOrRoot(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && (b.Op == OpPow || b.Op == OpRoot)
}

// Pow evaluates Term^Term. Any other combination stays an unevaluated
// Power node.
func Pow(base, exp Expr) Expr {
	bt, ok1 := base.(Term)
	et, ok2 := exp.(Term)
	if ok1 && ok2 {
		return bt.Pow(et)
	}
	return Power(base, exp)
}

// ============================================================
// Multiplication
// ============================================================

// Mul multiplies a by b, distributing over sums, and merges like terms.
func Mul(a, b Expr) Expr { return CombineTerms(Distribute(a, b)) }

// Distribute returns the distributed product of a and b before like terms
// are merged.
func Distribute(a, b Expr) Expr {
	a, b = unwrap(a), unwrap(b)
	at, aTerm := a.(Term)
	bt, bTerm := b.(Term)
	switch {
	case aTerm && bTerm:
		return at.Mul(bt)
	case bTerm:
		return mulByTerm(a, bt)
	case aTerm:
		return mulByTerm(b, at)
	}

	ad, aDurch := asOp(a, OpDurch)
	bd, bDurch := asOp(b, OpDurch)
	switch {
	case aDurch && bDurch:
		return Div(Mul(ad.Left, bd.Left), Mul(ad.Right, bd.Right))
	case aDurch:
		if sameValue(ad.Right, b) {
			return ad.Left
		}
		return Div(Mul(ad.Left, b), ad.Right)
	case bDurch:
		if sameValue(bd.Right, a) {
			return bd.Left
		}
		return Div(Mul(a, bd.Left), bd.Right)
	}

	if isSum(a) || isSum(b) {
		var acc Expr
		for _, x := range summands(a, false) {
			for _, y := range summands(b, false) {
				p := Distribute(x.expr, y.expr)
				if x.negative != y.negative {
					p = Neg(p)
				}
				if acc == nil {
					acc = p
				} else {
					acc = Plus(acc, p)
				}
			}
		}
		return acc
	}
	return Mal(a, b)
}

func mulByTerm(e Expr, t Term) Expr {
	switch v := e.(type) {
	case Term:
		return t.Mul(v)
	case *Nested:
		return mulByTerm(v.Inner, t)
	case *Binary:
		switch v.Op {
		case OpPlus:
			return Plus(mulByTerm(v.Left, t), mulByTerm(v.Right, t))
		case OpMinus:
			return Minus(mulByTerm(v.Left, t), mulByTerm(v.Right, t))
		case OpDurch:
			return Div(CombineTerms(mulByTerm(v.Left, t)), v.Right)
		case OpMal:
			collapsed := Distribute(v.Left, v.Right)
			if m, ok := asOp(collapsed, OpMal); ok {
				if lt, ok := m.Left.(Term); ok {
					return Mal(t.Mul(lt), m.Right)
				}
				return Mal(t, m)
			}
			return mulByTerm(collapsed, t)
		}
	}
	if t.IsConstant() && t.coef.IsOne() {
		return e
	}
	return Mal(t, e)
}

func unwrap(e Expr) Expr {
	for {
		n, ok := e.(*Nested)
		if !ok {
			return e
		}
		e = n.Inner
	}
}

func asOp(e Expr, op Operator) (*Binary, bool) {
	b, ok := e.(*Binary)
	if ok && b.Op == op {
		return b, true
	}
	return nil, false
}

func isSum(e Expr) bool {
	b, ok := e.(*Binary)
	return ok && (b.Op == OpPlus || b.Op == OpMinus)
}

// summands flattens a Plus/Minus chain into signed pieces. Nested sums are
// flattened too.
func summands(e Expr, negative bool) []piece {
	switch v := unwrap(e).(type) {
	case *Binary:
		switch v.Op {
		case OpPlus:
			return append(summands(v.Left, negative), summands(v.Right, negative)...)
		case OpMinus:
			return append(summands(v.Left, negative), summands(v.Right, !negative)...)
		}
		return []piece{{expr: v, negative: negative}}
	default:
		return []piece{{expr: v, negative: negative}}
	}
}

// ============================================================
// Division and cancellation
// ============================================================

// Div divides a by b, cancelling the content (common coefficient gcd and
// shared variable powers) of both sides.
func Div(a, b Expr) Expr {
	a, b = unwrap(a), unwrap(b)
	if bt, ok := b.(Term); ok && bt.IsZero() {
		return Durch(a, b)
	}
	if ad, ok := asOp(a, OpDurch); ok {
		return Div(ad.Left, Mul(ad.Right, b))
	}
	if bd, ok := asOp(b, OpDurch); ok {
		return Div(Mul(a, bd.Right), bd.Left)
	}
	if sameValue(a, b) {
		return Const(N(1))
	}
	if am, ok := asOp(a, OpMal); ok {
		switch {
		case sameValue(am.Right, b):
			return CombineTerms(am.Left)
		case sameValue(am.Left, b):
			return CombineTerms(am.Right)
		}
	}
	na, nb := Cancel(a, b)
	at, aTerm := na.(Term)
	bt, bTerm := nb.(Term)
	if aTerm && bTerm {
		return at.Div(bt)
	}
	if bTerm && bt.IsConstant() {
		switch {
		case bt.coef.IsOne():
			return na
		case bt.coef.IsNegOne():
			return CombineTerms(Neg(na))
		case bt.coef.IsNegative():
			return Durch(CombineTerms(Neg(na)), bt.Neg())
		}
	}
	return Durch(na, nb)
}

// sameValue reports whether a and b are the same expression once
// parentheses are dropped and like terms merged.
func sameValue(a, b Expr) bool {
	return CombineTerms(unwrap(a)).Equal(CombineTerms(unwrap(b)))
}

// Cancel divides a and b by their common content and returns both results.
func Cancel(a, b Expr) (Expr, Expr) {
	common := commonContent(content(a), content(b))
	if common.IsConstant() && common.coef.IsOne() {
		return a, b
	}
	return divideContent(a, common), divideContent(b, common)
}

// content is the largest monomial that divides every summand of e exactly.
func content(e Expr) Term {
	switch v := e.(type) {
	case Term:
		if v.IsZero() {
			return v
		}
		return NewTerm(v.coef.Abs(), v.vars)
	case *Nested:
		return content(v.Inner)
	case *Binary:
		switch v.Op {
		case OpPlus, OpMinus:
			l, r := content(v.Left), content(v.Right)
			if l.IsZero() {
				return r
			}
			if r.IsZero() {
				return l
			}
			return commonContent(l, r)
		case OpMal, OpDurch:
			return content(v.Left)
		}
	}
	return Const(N(1))
}

func commonContent(a, b Term) Term {
	if a.IsZero() || b.IsZero() {
		return Const(N(1))
	}
	coef := N(1)
	if a.coef.IsInteger() && b.coef.IsInteger() {
		coef = GCD(a.coef, b.coef)
	}
	var vars Variables
	a.vars.Each(func(v Variable, exp Num) {
		other := b.vars.Get(v)
		if !exp.IsPositive() || !other.IsPositive() {
			return
		}
		if other.Cmp(exp) < 0 {
			exp = other
		}
		vars = vars.With(v, exp)
	})
	return NewTerm(coef, vars)
}

// divideContent divides every summand of e by c, which must divide each of
// them exactly.
func divideContent(e Expr, c Term) Expr {
	switch v := e.(type) {
	case Term:
		vars := v.vars
		c.vars.Each(func(x Variable, exp Num) {
			vars = vars.With(x, vars.Get(x).Sub(exp))
		})
		return NewTerm(v.coef.Div(c.coef), vars)
	case *Nested:
		return Paren(divideContent(v.Inner, c))
	case *Binary:
		switch v.Op {
		case OpPlus, OpMinus, OpMal, OpDurch:
			left := divideContent(v.Left, c)
			if v.Op == OpPlus || v.Op == OpMinus {
				return &Binary{Op: v.Op, Left: left, Right: divideContent(v.Right, c)}
			}
			return &Binary{Op: v.Op, Left: left, Right: v.Right}
		}
	}
	return Durch(e, c)
}
