// Package goalgebra is an exact symbolic algebra engine for Go.
//
// Expressions are immutable trees of monomial terms joined by binary
// operators. The package merges like terms, multiplies and divides with
// common-factor cancellation, and rearranges equations to make a chosen
// term the subject. Numbers are exact rationals (math/big.Rat).
package goalgebra

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	String() string
	LaTeX() string
	Equal(other Expr) bool
}

// Custom is an extension leaf. Implementations are treated as opaque by the
// combine engine and grouped by Key.
type Custom interface {
	Expr
	Clone() Custom
	// Key identifies the leaf independently of its sign.
	Key() string
	Negate() Custom
	// Sign is -1 for a negated leaf, otherwise 1.
	Sign() int
}

// ============================================================
// Binary: operator node
// ============================================================

type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMal
	OpDurch
	OpPow
	OpRoot
)

var operatorNames = [...]string{"plus", "minus", "mal", "durch", "pow", "root"}

// String is the wire name of the operator.
func (op Operator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "unknown"
}

// ParseOperator is the inverse of Operator.String.
func ParseOperator(s string) (Operator, bool) {
	for i, name := range operatorNames {
		if name == s {
			return Operator(i), true
		}
	}
	return 0, false
}

type Binary struct {
	Op          Operator
	Left, Right Expr
}

func Plus(l, r Expr) *Binary  { return &Binary{Op: OpPlus, Left: l, Right: r} }
func Minus(l, r Expr) *Binary { return &Binary{Op: OpMinus, Left: l, Right: r} }
func Mal(l, r Expr) *Binary   { return &Binary{Op: OpMal, Left: l, Right: r} }
func Durch(l, r Expr) *Binary { return &Binary{Op: OpDurch, Left: l, Right: r} }

// Power is an unevaluated base^exp node.
func Power(base, exp Expr) *Binary { return &Binary{Op: OpPow, Left: base, Right: exp} }

// Radical is an unevaluated index-th root of radicand.
func Radical(index, radicand Expr) *Binary {
	return &Binary{Op: OpRoot, Left: index, Right: radicand}
}

func (b *Binary) String() string {
	switch b.Op {
	case OpPlus:
		return b.Left.String() + " + " + b.Right.String()
	case OpMinus:
		return b.Left.String() + " - " + b.Right.String()
	case OpMal:
		left := parenthesize(b.Left)
		if t, ok := b.Left.(Term); ok && !t.coef.IsNegative() {
			left = t.String()
		}
		return left + parenthesize(b.Right)
	case OpDurch:
		return wrapUnlessTerm(b.Left) + "/" + wrapUnlessTerm(b.Right)
	case OpPow:
		return wrapUnlessAtomic(b.Left) + "^" + wrapUnlessAtomic(b.Right)
	case OpRoot:
		return wrapUnlessAtomic(b.Left) + "√" + wrapUnlessAtomic(b.Right)
	}
	return "?"
}

func (b *Binary) LaTeX() string {
	switch b.Op {
	case OpPlus:
		return b.Left.LaTeX() + " + " + b.Right.LaTeX()
	case OpMinus:
		return b.Left.LaTeX() + " - " + b.Right.LaTeX()
	case OpMal:
		left := latexParen(b.Left)
		if t, ok := b.Left.(Term); ok && !t.coef.IsNegative() {
			left = t.LaTeX()
		}
		return left + latexParen(b.Right)
	case OpDurch:
		return `\frac{` + b.Left.LaTeX() + "}{" + b.Right.LaTeX() + "}"
	case OpPow:
		base := b.Left.LaTeX()
		if !isAtomic(b.Left) {
			base = latexParen(b.Left)
		}
		return base + "^{" + b.Right.LaTeX() + "}"
	case OpRoot:
		if t, ok := b.Left.(Term); ok && t.vars.IsEmpty() && t.coef.CmpInt(2) == 0 {
			return `\sqrt{` + b.Right.LaTeX() + "}"
		}
		return `\sqrt[` + b.Left.LaTeX() + "]{" + b.Right.LaTeX() + "}"
	}
	return "?"
}

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.Op == o.Op && b.Left.Equal(o.Left) && b.Right.Equal(o.Right)
}

// parenthesize wraps e unless it already renders its own parentheses.
func parenthesize(e Expr) string {
	if _, ok := e.(*Nested); ok {
		return e.String()
	}
	return "(" + e.String() + ")"
}

func latexParen(e Expr) string {
	if _, ok := e.(*Nested); ok {
		return e.LaTeX()
	}
	return `\left(` + e.LaTeX() + `\right)`
}

func wrapUnlessTerm(e Expr) string {
	if _, ok := e.(Term); ok {
		return e.String()
	}
	return parenthesize(e)
}

func wrapUnlessAtomic(e Expr) string {
	if isAtomic(e) {
		return e.String()
	}
	return parenthesize(e)
}

// isAtomic reports whether e renders as a single token: a non-negative
// constant or a bare variable.
func isAtomic(e Expr) bool {
	t, ok := e.(Term)
	if !ok {
		return false
	}
	if t.vars.IsEmpty() {
		return !t.coef.IsNegative()
	}
	return t.coef.IsOne() && t.vars.Len() == 1 && t.vars.At(0).Exp.IsOne()
}

// ============================================================
// Nested: explicit parenthesis
// ============================================================

type Nested struct{ Inner Expr }

func Paren(e Expr) *Nested { return &Nested{Inner: e} }

func (n *Nested) String() string { return "(" + n.Inner.String() + ")" }
func (n *Nested) LaTeX() string  { return `\left(` + n.Inner.LaTeX() + `\right)` }
func (n *Nested) Equal(other Expr) bool {
	o, ok := other.(*Nested)
	return ok && n.Inner.Equal(o.Inner)
}

// ============================================================
// Function: named function application (Custom leaf)
// ============================================================

type Function struct {
	Name    string
	Arg     Expr
	Negated bool
}

func Fn(name string, arg Expr) *Function { return &Function{Name: name, Arg: arg} }

func (f *Function) String() string {
	s := f.Name + "(" + f.Arg.String() + ")"
	if f.Negated {
		return "-" + s
	}
	return s
}

var latexFunctions = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`, "ln": `\ln`, "log": `\log`, "exp": `\exp`,
}

func (f *Function) LaTeX() string {
	name, ok := latexFunctions[f.Name]
	if !ok {
		name = `\operatorname{` + f.Name + "}"
	}
	s := name + `\left(` + f.Arg.LaTeX() + `\right)`
	if f.Negated {
		return "-" + s
	}
	return s
}

func (f *Function) Equal(other Expr) bool {
	o, ok := other.(*Function)
	return ok && f.Name == o.Name && f.Negated == o.Negated && f.Arg.Equal(o.Arg)
}

func (f *Function) Clone() Custom {
	return &Function{Name: f.Name, Arg: Clone(f.Arg), Negated: f.Negated}
}

func (f *Function) Key() string { return f.Name + "(" + f.Arg.String() + ")" }

func (f *Function) Negate() Custom {
	return &Function{Name: f.Name, Arg: Clone(f.Arg), Negated: !f.Negated}
}

func (f *Function) Sign() int {
	if f.Negated {
		return -1
	}
	return 1
}

// ============================================================
// Tree helpers
// ============================================================

// Clone deep-copies a tree. Terms are values and are returned as is.
func Clone(e Expr) Expr {
	switch v := e.(type) {
	case *Binary:
		return &Binary{Op: v.Op, Left: Clone(v.Left), Right: Clone(v.Right)}
	case *Nested:
		return &Nested{Inner: Clone(v.Inner)}
	case Custom:
		return v.Clone()
	}
	return e
}

// String and LaTeX are free-function forms of the Expr methods.
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Walk visits e and its children depth-first, left to right. Custom leaves
// are not descended into.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	switch v := e.(type) {
	case *Binary:
		Walk(v.Left, fn)
		Walk(v.Right, fn)
	case *Nested:
		Walk(v.Inner, fn)
	}
}

// Describe renders the node kind, used in step traces and tool output.
func Describe(e Expr) string {
	switch v := e.(type) {
	case Term:
		if v.vars.IsEmpty() {
			return "constant"
		}
		return "term"
	case *Binary:
		return v.Op.String()
	case *Nested:
		return "nested"
	case Custom:
		return "custom"
	}
	return "unknown"
}
