package goalgebra

import (
	"sort"
)

// ============================================================
// Canonicalization: combine like terms
// ============================================================

// CombineTerms merges like terms across every Plus/Minus chain in e.
//
// The result lists non-sum pieces first (in walk order), then terms ordered
// by their variables, then custom leaves by ascending multiplicity. Zero
// terms are dropped and an empty sum becomes 0. CombineTerms is idempotent.
func CombineTerms(e Expr) Expr {
	switch v := e.(type) {
	case *Binary:
		if v.Op == OpPlus || v.Op == OpMinus {
			acc := newCombiner()
			acc.collect(v, 1)
			return acc.build()
		}
		return &Binary{Op: v.Op, Left: CombineTerms(v.Left), Right: CombineTerms(v.Right)}
	case *Nested:
		return Paren(CombineTerms(v.Inner))
	}
	return e
}

type termSlot struct {
	vars Variables
	coef Num
}

type customSlot struct {
	leaf  Custom
	count Num
}

type piece struct {
	expr     Expr
	negative bool
}

type combiner struct {
	leftovers []piece
	terms     map[string]*termSlot
	customs   map[string]*customSlot
}

func newCombiner() *combiner {
	return &combiner{terms: map[string]*termSlot{}, customs: map[string]*customSlot{}}
}

func (c *combiner) collect(e Expr, sign int) {
	switch v := e.(type) {
	case Term:
		c.addTerm(v, sign)
	case Custom:
		c.addCustom(v, N(int64(sign)))
	case *Binary:
		switch v.Op {
		case OpPlus:
			c.collect(v.Left, sign)
			c.collect(v.Right, sign)
			return
		case OpMinus:
			c.collect(v.Left, sign)
			c.collect(v.Right, -sign)
			return
		}
		c.addLeftover(CombineTerms(v), sign)
	default:
		c.addLeftover(CombineTerms(v), sign)
	}
}

// addLeftover files an already combined non-sum piece. The shape checks run
// on the combined form so a second pass sees exactly what the first saw.
func (c *combiner) addLeftover(e Expr, sign int) {
	if m, ok := asOp(e, OpMal); ok {
		if k, ok := unwrap(m.Left).(Term); ok && k.IsConstant() {
			if leaf, ok := m.Right.(Custom); ok {
				c.addCustom(leaf, k.coef.Mul(N(int64(sign))))
				return
			}
		}
	}
	if isZeroProduct(e) {
		return
	}
	c.leftovers = append(c.leftovers, piece{expr: e, negative: sign < 0})
}

// isZeroProduct reports whether e is a product, quotient or parenthesis
// with a literal zero factor.
func isZeroProduct(e Expr) bool {
	switch v := e.(type) {
	case *Nested:
		return isZeroTerm(unwrap(v))
	case *Binary:
		switch v.Op {
		case OpMal:
			return isZeroTerm(unwrap(v.Left)) || isZeroTerm(unwrap(v.Right))
		case OpDurch:
			return isZeroTerm(unwrap(v.Left)) && !isZeroTerm(unwrap(v.Right)) && !isZeroProduct(v.Right)
		}
	}
	return false
}

func isZeroTerm(e Expr) bool {
	t, ok := e.(Term)
	return ok && t.IsZero()
}

func (c *combiner) addTerm(t Term, sign int) {
	key := t.vars.Key()
	slot, ok := c.terms[key]
	if !ok {
		slot = &termSlot{vars: t.vars, coef: N(0)}
		c.terms[key] = slot
	}
	if sign < 0 {
		slot.coef = slot.coef.Sub(t.coef)
	} else {
		slot.coef = slot.coef.Add(t.coef)
	}
}

func (c *combiner) addCustom(leaf Custom, count Num) {
	if leaf.Sign() < 0 {
		leaf, count = leaf.Negate(), count.Neg()
	}
	key := leaf.Key()
	slot, ok := c.customs[key]
	if !ok {
		slot = &customSlot{leaf: leaf, count: N(0)}
		c.customs[key] = slot
	}
	slot.count = slot.count.Add(count)
}

func (c *combiner) pieces() []piece {
	out := append([]piece(nil), c.leftovers...)

	terms := make([]*termSlot, 0, len(c.terms))
	for _, slot := range c.terms {
		if !slot.coef.IsZero() {
			terms = append(terms, slot)
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].vars.Compare(terms[j].vars) < 0 })
	for _, slot := range terms {
		out = append(out, piece{
			expr:     NewTerm(slot.coef.Abs(), slot.vars),
			negative: slot.coef.IsNegative(),
		})
	}

	keys := make([]string, 0, len(c.customs))
	for key, slot := range c.customs {
		if !slot.count.IsZero() {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := c.customs[keys[i]].count, c.customs[keys[j]].count
		if d := ci.Cmp(cj); d != 0 {
			return d < 0
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		slot := c.customs[key]
		var expr Expr = slot.leaf
		if n := slot.count.Abs(); !n.IsOne() {
			expr = Mal(Const(n), slot.leaf)
		}
		out = append(out, piece{expr: expr, negative: slot.count.IsNegative()})
	}
	return out
}

func (c *combiner) build() Expr {
	ps := c.pieces()
	if len(ps) == 0 {
		return Const(N(0))
	}
	acc := ps[0].expr
	if ps[0].negative {
		acc = CombineTerms(Neg(acc))
	}
	for _, p := range ps[1:] {
		if p.negative {
			acc = Minus(acc, p.expr)
		} else {
			acc = Plus(acc, p.expr)
		}
	}
	return acc
}
