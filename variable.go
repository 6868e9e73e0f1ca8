package goalgebra

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Variable
// ============================================================

// Variable is a single-letter symbol with an optional label, e.g. x or x{1}.
type Variable struct {
	Letter rune
	Label  string
}

func Var(letter rune) Variable                      { return Variable{Letter: letter} }
func LabeledVar(letter rune, label string) Variable { return Variable{Letter: letter, Label: label} }

// ParseVariable reads the String form, x or x{label}.
func ParseVariable(s string) (Variable, error) {
	letter, size := utf8.DecodeRuneInString(s)
	if letter == utf8.RuneError {
		return Variable{}, fmt.Errorf("invalid variable %q", s)
	}
	rest := s[size:]
	switch {
	case rest == "":
		return Variable{Letter: letter}, nil
	case len(rest) > 2 && rest[0] == '{' && rest[len(rest)-1] == '}':
		return Variable{Letter: letter, Label: rest[1 : len(rest)-1]}, nil
	}
	return Variable{}, fmt.Errorf("invalid variable %q", s)
}

func (v Variable) String() string {
	if v.Label == "" {
		return string(v.Letter)
	}
	return string(v.Letter) + "{" + v.Label + "}"
}

func (v Variable) LaTeX() string {
	if v.Label == "" {
		return string(v.Letter)
	}
	return string(v.Letter) + "_{" + v.Label + "}"
}

// Compare orders unlabelled variables before labelled ones. Labelled
// variables compare by label first, then by letter.
func (v Variable) Compare(o Variable) int {
	switch {
	case v.Label == "" && o.Label != "":
		return -1
	case v.Label != "" && o.Label == "":
		return 1
	case v.Label != o.Label:
		return strings.Compare(v.Label, o.Label)
	case v.Letter < o.Letter:
		return -1
	case v.Letter > o.Letter:
		return 1
	}
	return 0
}

// ============================================================
// Variables: monomial signature
// ============================================================

// VarPower pairs a variable with its exponent.
type VarPower struct {
	Var Variable
	Exp Num
}

// Variables is an ordered Variable → exponent mapping. Entries are sorted by
// Variable order, keys are unique and no exponent is zero.
type Variables struct{ entries []VarPower }

// NewVariables merges duplicate variables by summing exponents.
func NewVariables(pairs ...VarPower) Variables {
	var vs Variables
	for _, p := range pairs {
		vs = vs.With(p.Var, vs.Get(p.Var).Add(p.Exp))
	}
	return vs
}

func (vs Variables) Len() int          { return len(vs.entries) }
func (vs Variables) IsEmpty() bool     { return len(vs.entries) == 0 }
func (vs Variables) At(i int) VarPower { return vs.entries[i] }

func (vs Variables) find(v Variable) (int, bool) {
	i := sort.Search(len(vs.entries), func(i int) bool { return vs.entries[i].Var.Compare(v) >= 0 })
	return i, i < len(vs.entries) && vs.entries[i].Var.Compare(v) == 0
}

// Get returns the exponent of v, or 0 when absent.
func (vs Variables) Get(v Variable) Num {
	if i, ok := vs.find(v); ok {
		return vs.entries[i].Exp
	}
	return Num{}
}

func (vs Variables) Has(v Variable) bool { _, ok := vs.find(v); return ok }

// With returns a copy with v set to exp. A zero exponent removes v.
func (vs Variables) With(v Variable, exp Num) Variables {
	if exp.IsZero() {
		return vs.Without(v)
	}
	i, ok := vs.find(v)
	out := make([]VarPower, 0, len(vs.entries)+1)
	out = append(out, vs.entries[:i]...)
	out = append(out, VarPower{Var: v, Exp: exp})
	if ok {
		i++
	}
	out = append(out, vs.entries[i:]...)
	return Variables{entries: out}
}

func (vs Variables) Without(v Variable) Variables {
	i, ok := vs.find(v)
	if !ok {
		return vs
	}
	out := make([]VarPower, 0, len(vs.entries)-1)
	out = append(out, vs.entries[:i]...)
	out = append(out, vs.entries[i+1:]...)
	return Variables{entries: out}
}

// Keys returns the variables in order.
func (vs Variables) Keys() []Variable {
	keys := make([]Variable, len(vs.entries))
	for i, e := range vs.entries {
		keys[i] = e.Var
	}
	return keys
}

// Each calls fn for every entry in order.
func (vs Variables) Each(fn func(v Variable, exp Num)) {
	for _, e := range vs.entries {
		fn(e.Var, e.Exp)
	}
}

// Merge sums exponents of shared variables (monomial product).
func (vs Variables) Merge(o Variables) Variables {
	out := vs
	for _, e := range o.entries {
		out = out.With(e.Var, out.Get(e.Var).Add(e.Exp))
	}
	return out
}

// Scale multiplies every exponent by k.
func (vs Variables) Scale(k Num) Variables {
	if k.IsZero() {
		return Variables{}
	}
	out := make([]VarPower, len(vs.entries))
	for i, e := range vs.entries {
		out[i] = VarPower{Var: e.Var, Exp: e.Exp.Mul(k)}
	}
	return Variables{entries: out}
}

func (vs Variables) Equal(o Variables) bool { return vs.Compare(o) == 0 }

// Compare is lexicographic over (variable, exponent) pairs; a proper prefix
// sorts first, so constants precede everything.
func (vs Variables) Compare(o Variables) int {
	for i := 0; i < len(vs.entries) && i < len(o.entries); i++ {
		if c := vs.entries[i].Var.Compare(o.entries[i].Var); c != 0 {
			return c
		}
		if c := vs.entries[i].Exp.Cmp(o.entries[i].Exp); c != 0 {
			return c
		}
	}
	switch {
	case len(vs.entries) < len(o.entries):
		return -1
	case len(vs.entries) > len(o.entries):
		return 1
	}
	return 0
}

// Key is a canonical string usable as a map key.
func (vs Variables) Key() string {
	var sb strings.Builder
	for _, e := range vs.entries {
		sb.WriteString(e.Var.String())
		sb.WriteByte('^')
		sb.WriteString(e.Exp.RatString())
		sb.WriteByte(';')
	}
	return sb.String()
}

func (vs Variables) String() string {
	var sb strings.Builder
	for _, e := range vs.entries {
		sb.WriteString(e.Var.String())
		if !e.Exp.IsOne() {
			sb.WriteByte('^')
			sb.WriteString(e.Exp.String())
		}
	}
	return sb.String()
}

func (vs Variables) LaTeX() string {
	var sb strings.Builder
	for _, e := range vs.entries {
		sb.WriteString(e.Var.LaTeX())
		if !e.Exp.IsOne() {
			sb.WriteString("^{" + e.Exp.LaTeX() + "}")
		}
	}
	return sb.String()
}
