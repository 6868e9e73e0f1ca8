package goalgebra

import (
	"context"
	"fmt"
)

// ============================================================
// Rearrangement: make a term the subject
// ============================================================

const (
	// DefaultMaxSteps bounds the rearrangement loop.
	DefaultMaxSteps = 64
	// DefaultMaxNodes bounds the combined tree size of both sides.
	DefaultMaxNodes = 2048
)

type StepKind int

const (
	StepSelectSide StepKind = iota
	StepGather
	StepUnwrap
	StepCrossMultiply
	StepSwap
	StepDivideOut
	StepFold
	StepClearDenominator
	StepExpand
	StepFactor
	StepMoveTerms
	StepMoveTerm
	StepReconcile
)

var stepKindNames = [...]string{
	"select-side", "gather", "unwrap", "cross-multiply", "swap", "divide-out",
	"fold", "clear-denominator", "expand", "factor", "move-terms", "move-term", "reconcile",
}

func (k StepKind) String() string {
	if int(k) < len(stepKindNames) {
		return stepKindNames[k]
	}
	return "unknown"
}

// Step is one rearrangement action and the equation it produced.
type Step struct {
	Kind     StepKind
	Detail   string
	Equation Equation
}

func (s Step) String() string {
	if s.Detail == "" {
		return s.Kind.String() + ": " + s.Equation.String()
	}
	return s.Kind.String() + " (" + s.Detail + "): " + s.Equation.String()
}

// Rearranger isolates a target term on one side of an equation.
type Rearranger struct {
	// MaxSteps bounds the move loop; zero means DefaultMaxSteps.
	MaxSteps int
	// MaxNodes bounds the size of the working equation; zero means
	// DefaultMaxNodes.
	MaxNodes int
	// Observe, if set, receives every step.
	Observe func(Step)
}

// TryMakeSubject rearranges e so that target stands alone on the left.
func (e Equation) TryMakeSubject(target Term) (Equation, error) {
	return Rearranger{}.MakeSubject(e, target)
}

// TryMakeSubjectTrace is TryMakeSubject with a step observer.
func (e Equation) TryMakeSubjectTrace(target Term, observe func(Step)) (Equation, error) {
	return Rearranger{Observe: observe}.MakeSubject(e, target)
}

// rearrangement is the mutable state of one MakeSubject call.
type rearrangement struct {
	original Equation
	target   Term
	targets  []Variable
	kept     Expr
	other    Expr
	keptLeft bool
	rel      Relation
	observe  func(Step)
}

// MakeSubject isolates target. On failure the original equation is returned
// along with the error.
func (r Rearranger) MakeSubject(eq Equation, target Term) (Equation, error) {
	return r.MakeSubjectContext(context.Background(), eq, target)
}

// MakeSubjectContext is MakeSubject that gives up with ctx.Err() once ctx is
// done.
func (r Rearranger) MakeSubjectContext(ctx context.Context, eq Equation, target Term) (Equation, error) {
	s := &rearrangement{
		original: eq.Clone(),
		target:   target,
		targets:  target.vars.Keys(),
		rel:      eq.Relation,
		observe:  r.Observe,
	}
	if target.IsZero() || target.IsConstant() {
		return s.original, s.impossible()
	}
	both := Plus(eq.Left, eq.Right)
	var missing []Variable
	for _, v := range s.targets {
		if !ContainsAny(both, v) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return s.original, &UnknownVariablesError{Equation: s.original, Missing: missing}
	}

	left, right := CombineTerms(eq.Left), CombineTerms(eq.Right)
	if CountOccurrences(right, s.targets...) > CountOccurrences(left, s.targets...) {
		s.kept, s.other, s.keptLeft = right, left, false
		s.emit(StepSelectSide, "right")
	} else {
		s.kept, s.other, s.keptLeft = left, right, true
		s.emit(StepSelectSide, "left")
	}

	limit := r.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}
	maxNodes := r.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return s.original, err
		}
		if i >= limit {
			return s.original, s.impossible()
		}
		s.gather()
		done, err := s.move()
		if err != nil {
			return s.original, err
		}
		if done {
			break
		}
		if Size(s.kept)+Size(s.other) > maxNodes {
			return s.original, s.impossible()
		}
	}
	return s.reconcile()
}

func (s *rearrangement) has(e Expr) bool { return ContainsAny(e, s.targets...) }

func (s *rearrangement) snapshot() Equation {
	if s.keptLeft {
		return Equation{Left: s.kept, Relation: s.rel, Right: s.other}
	}
	return Equation{Left: s.other, Relation: s.rel, Right: s.kept}
}

func (s *rearrangement) emit(kind StepKind, detail string) {
	if s.observe != nil {
		s.observe(Step{Kind: kind, Detail: detail, Equation: s.snapshot()})
	}
}

func (s *rearrangement) impossible() error {
	return &ImpossibleSolutionError{Equation: s.original, Target: s.target}
}

// gather moves every target-bearing piece of the other side to the kept side.
func (s *rearrangement) gather() {
	if !s.has(s.other) {
		return
	}
	var with, without []piece
	for _, p := range summands(s.other, false) {
		if s.has(p.expr) {
			with = append(with, p)
		} else {
			without = append(without, p)
		}
	}
	s.kept = Sub(s.kept, sumOf(with))
	s.other = sumOf(without)
	s.emit(StepGather, fmt.Sprintf("%d piece(s)", len(with)))
}

// move performs one isolation step on the kept side. It reports true once the
// kept side is a single term carrying every target variable.
func (s *rearrangement) move() (bool, error) {
	switch k := s.kept.(type) {
	case Term:
		if ContainsAll(k, s.targets...) {
			if k.SameSignature(s.target) {
				return true, nil
			}
			return false, s.divideCofactor(k)
		}
		if !s.has(k) && s.has(s.other) {
			s.kept, s.other, s.keptLeft = s.other, s.kept, !s.keptLeft
			s.emit(StepMoveTerm, k.String())
			return false, nil
		}
		return false, s.impossible()

	case *Nested:
		s.kept = k.Inner
		s.emit(StepUnwrap, "")
		return false, nil

	case *Binary:
		switch k.Op {
		case OpDurch:
			return false, s.moveQuotient(k)
		case OpMal:
			return false, s.moveProduct(k)
		case OpPlus, OpMinus:
			return false, s.moveSum()
		}
	}
	return false, s.impossible()
}

// divideCofactor splits a term such as 2qy into the target part 2q and the
// cofactor y, then divides the other side by the cofactor.
func (s *rearrangement) divideCofactor(k Term) error {
	rest, ok := s.cofactor(k)
	if !ok {
		return s.impossible()
	}
	cofactor := NewTerm(N(1), rest)
	s.kept, s.other = NewTerm(k.coef, s.target.vars), Div(s.other, cofactor)
	s.emit(StepDivideOut, cofactor.String())
	return nil
}

// cofactor returns the variables of t left after removing the target's
// variables. ok is false unless t carries each target variable with exactly
// the target's exponent.
func (s *rearrangement) cofactor(t Term) (Variables, bool) {
	rest, ok := t.vars, true
	s.target.vars.Each(func(v Variable, exp Num) {
		if !rest.Get(v).Equal(exp) {
			ok = false
		}
		rest = rest.Without(v)
	})
	return rest, ok
}

func (s *rearrangement) moveQuotient(k *Binary) error {
	if s.has(k.Right) && !s.has(k.Left) {
		// n/d = o  =>  d = n/o
		s.kept, s.other = k.Right, Div(k.Left, s.other)
		s.emit(StepSwap, k.Right.String())
		return nil
	}
	s.kept, s.other = CombineTerms(k.Left), Mul(s.other, k.Right)
	s.emit(StepCrossMultiply, k.Right.String())
	return nil
}

func (s *rearrangement) moveProduct(k *Binary) error {
	var factor, rest Expr
	switch {
	case !s.has(k.Left):
		factor, rest = k.Left, k.Right
	case !s.has(k.Right):
		factor, rest = k.Right, k.Left
	}
	if factor != nil {
		if t, ok := unwrap(factor).(Term); ok && t.IsZero() {
			return s.impossible()
		}
		if t, ok := unwrap(factor).(Term); ok && t.IsConstant() && t.coef.IsNegative() {
			s.rel = s.rel.Flip()
		}
		s.kept, s.other = unwrap(rest), Div(s.other, factor)
		s.emit(StepDivideOut, factor.String())
		return nil
	}
	folded := Mul(k.Left, k.Right)
	if folded.Equal(k) {
		return s.impossible()
	}
	s.kept = folded
	s.emit(StepFold, "")
	return nil
}

func (s *rearrangement) moveSum() error {
	parts := summands(s.kept, false)
	var with, without []piece
	for _, p := range parts {
		if s.has(p.expr) {
			with = append(with, p)
		} else {
			without = append(without, p)
		}
	}
	if len(without) > 0 {
		s.other = Sub(s.other, sumOf(without))
		s.kept = sumOf(with)
		s.emit(StepMoveTerms, fmt.Sprintf("%d piece(s)", len(without)))
		return nil
	}

	// Every summand carries a target: clear a denominator, else expand,
	// else factor the target out.
	for _, p := range parts {
		if d, ok := asOp(p.expr, OpDurch); ok && !s.has(d.Right) {
			cleared := make([]piece, len(parts))
			for i, q := range parts {
				cleared[i] = piece{expr: Mul(q.expr, d.Right), negative: q.negative}
			}
			s.kept, s.other = sumOf(cleared), Mul(s.other, d.Right)
			s.emit(StepClearDenominator, d.Right.String())
			return nil
		}
	}
	expanded := make([]piece, len(parts))
	for i, p := range parts {
		expanded[i] = p
		switch v := p.expr.(type) {
		case *Nested:
			expanded[i].expr = CombineTerms(v.Inner)
		case *Binary:
			if v.Op == OpMal {
				expanded[i].expr = Mul(v.Left, v.Right)
			}
		}
	}
	next := sumOf(expanded)
	if next.Equal(s.kept) {
		return s.factorTarget(parts)
	}
	s.kept = next
	s.emit(StepExpand, "")
	return nil
}

// factorTarget rewrites a sum of terms as target·(sum of cofactors), as in
// 2x + xy => x(2 + y). Every cofactor must be free of the target.
func (s *rearrangement) factorTarget(parts []piece) error {
	sig := NewTerm(N(1), s.target.vars)
	cofactors := make([]piece, len(parts))
	for i, p := range parts {
		t, ok := p.expr.(Term)
		if !ok {
			return s.impossible()
		}
		rest, ok := s.cofactor(t)
		if !ok {
			return s.impossible()
		}
		cofactors[i] = piece{expr: NewTerm(t.coef, rest), negative: p.negative}
	}
	s.kept = Mal(sig, Paren(sumOf(cofactors)))
	s.emit(StepFactor, sig.String())
	return nil
}

// reconcile divides by the coefficient of the isolated term so that the
// target itself is the subject.
func (s *rearrangement) reconcile() (Equation, error) {
	t, ok := s.kept.(Term)
	if !ok || !t.SameSignature(s.target) {
		return s.original, s.impossible()
	}
	a, b := s.target.coef, t.coef
	if a.IsInteger() && b.IsInteger() {
		if g := GCD(a, b); !g.IsZero() {
			a, b = a.Div(g), b.Div(g)
		}
	}
	value := Div(Mul(s.other, Const(a)), Const(b))

	rel := s.rel
	if !s.keptLeft {
		rel = rel.Flip()
	}
	if a.Div(b).IsNegative() {
		rel = rel.Flip()
	}
	s.kept, s.other, s.keptLeft, s.rel = s.target, value, true, rel
	s.emit(StepReconcile, t.String())
	return Equation{Left: s.target, Relation: rel, Right: value}, nil
}

// sumOf joins signed pieces into a combined sum. No pieces give 0.
func sumOf(ps []piece) Expr {
	if len(ps) == 0 {
		return Const(N(0))
	}
	acc := ps[0].expr
	if ps[0].negative {
		acc = Neg(acc)
	}
	for _, p := range ps[1:] {
		if p.negative {
			acc = Minus(acc, p.expr)
		} else {
			acc = Plus(acc, p.expr)
		}
	}
	return CombineTerms(acc)
}
