package goalgebra

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ============================================================
// Num: exact rational number
// ============================================================

// Num is an immutable exact rational. The zero value is 0.
type Num struct{ val *big.Rat }

var (
	ratZero = new(big.Rat)
	ratOne  = big.NewRat(1, 1)
)

func N(n int64) Num { return Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) Num {
	if q == 0 {
		panic("goalgebra: denominator is zero")
	}
	return Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat converts a finite float64 exactly. Non-finite values become 0.
func NFloat(f float64) Num {
	r := new(big.Rat)
	if r.SetFloat64(f) == nil {
		return Num{}
	}
	return Num{val: r}
}

// ParseNum accepts integers, decimals ("2.5") and fractions ("5/2").
func ParseNum(s string) (Num, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Num{}, fmt.Errorf("invalid number %q", s)
	}
	return Num{val: r}, nil
}

func (n Num) rat() *big.Rat {
	if n.val == nil {
		return ratZero
	}
	return n.val
}

// Rat returns a copy of the underlying rational.
func (n Num) Rat() *big.Rat { return new(big.Rat).Set(n.rat()) }

func (n Num) Float64() float64 { f, _ := n.rat().Float64(); return f }

func (n Num) Add(o Num) Num { return Num{val: new(big.Rat).Add(n.rat(), o.rat())} }
func (n Num) Sub(o Num) Num { return Num{val: new(big.Rat).Sub(n.rat(), o.rat())} }
func (n Num) Mul(o Num) Num { return Num{val: new(big.Rat).Mul(n.rat(), o.rat())} }
func (n Num) Neg() Num      { return Num{val: new(big.Rat).Neg(n.rat())} }
func (n Num) Abs() Num      { return Num{val: new(big.Rat).Abs(n.rat())} }

// Div panics when o is zero, like integer division.
func (n Num) Div(o Num) Num {
	if o.IsZero() {
		panic("goalgebra: division by zero")
	}
	return Num{val: new(big.Rat).Quo(n.rat(), o.rat())}
}

// Rem returns n - o*trunc(n/o). Rem by zero returns n.
func (n Num) Rem(o Num) Num {
	if o.IsZero() {
		return n
	}
	q := new(big.Rat).Quo(n.rat(), o.rat())
	t := new(big.Int).Quo(q.Num(), q.Denom())
	prod := new(big.Rat).Mul(o.rat(), new(big.Rat).SetInt(t))
	return Num{val: prod.Neg(prod).Add(prod, n.rat())}
}

func (n Num) Cmp(o Num) int      { return n.rat().Cmp(o.rat()) }
func (n Num) CmpInt(i int64) int { return n.rat().Cmp(new(big.Rat).SetInt64(i)) }
func (n Num) Equal(o Num) bool   { return n.Cmp(o) == 0 }
func (n Num) Sign() int          { return n.rat().Sign() }
func (n Num) IsZero() bool       { return n.Sign() == 0 }
func (n Num) IsOne() bool        { return n.rat().Cmp(ratOne) == 0 }
func (n Num) IsNegOne() bool     { return n.CmpInt(-1) == 0 }
func (n Num) IsPositive() bool   { return n.Sign() > 0 }
func (n Num) IsNegative() bool   { return n.Sign() < 0 }
func (n Num) IsInteger() bool    { return n.rat().IsInt() }

// GCD is the Euclidean gcd over rationals: gcd(a, 0) = |a|, otherwise
// gcd(b, a mod b). The result is never negative.
func GCD(a, b Num) Num {
	if b.IsZero() {
		return a.Abs()
	}
	return GCD(b, a.Rem(b))
}

// maxExactExponent bounds exact integer exponentiation.
const maxExactExponent = 1 << 12

// Pow raises n to e. Integer exponents are exact; others go through float64.
// ok is false for 0 raised to a negative power or a non-finite result.
func (n Num) Pow(e Num) (Num, bool) {
	if e.IsZero() {
		return N(1), true
	}
	if e.IsInteger() && e.Abs().CmpInt(maxExactExponent) <= 0 {
		k := e.rat().Num()
		neg := k.Sign() < 0
		k = new(big.Int).Abs(k)
		if neg && n.IsZero() {
			return Num{}, false
		}
		num := new(big.Int).Exp(n.rat().Num(), k, nil)
		den := new(big.Int).Exp(n.rat().Denom(), k, nil)
		if neg {
			num, den = den, num
		}
		r := new(big.Rat).SetFrac(num, den)
		return Num{val: r}, true
	}
	f := math.Pow(n.Float64(), e.Float64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Num{}, false
	}
	return NFloat(f), true
}

// decimalPlaces reports how many digits the exact decimal expansion of n
// needs, or -1 when the expansion does not terminate.
func (n Num) decimalPlaces() int {
	d := new(big.Int).Set(n.rat().Denom())
	two, five := big.NewInt(2), big.NewInt(5)
	mod := new(big.Int)
	twos, fives := 0, 0
	for {
		if _, m := new(big.Int).QuoRem(d, two, mod); m.Sign() != 0 {
			break
		}
		d.Quo(d, two)
		twos++
	}
	for {
		if _, m := new(big.Int).QuoRem(d, five, mod); m.Sign() != 0 {
			break
		}
		d.Quo(d, five)
		fives++
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return -1
	}
	if twos > fives {
		return twos
	}
	return fives
}

func (n Num) String() string {
	r := n.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	if places := n.decimalPlaces(); places >= 0 {
		return r.FloatString(places)
	}
	return strconv.FormatFloat(n.Float64(), 'f', -1, 64)
}

func (n Num) LaTeX() string {
	r := n.rat()
	if r.IsInt() || n.decimalPlaces() >= 0 {
		return n.String()
	}
	sign := ""
	v := new(big.Rat).Set(r)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// RatString is the exact "p/q" (or "p") form used by the JSON codec.
func (n Num) RatString() string { return n.rat().RatString() }
