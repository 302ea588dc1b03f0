// seehuhn.de/go/ajisai - an exact-fraction concatenative language
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fraction implements exact rational numbers in canonical form.
//
// A Fraction is always fully reduced and its denominator is positive.
// Values are immutable: all operations return new fractions and never
// modify their operands, so fractions can be shared freely.
//
// Arithmetic on small operands is carried out in native 64-bit integers;
// larger operands fall back to math/big.
package fraction

import (
	"errors"
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

var (
	// ErrZeroDenominator is returned when a fraction with denominator zero
	// would be constructed.
	ErrZeroDenominator = errors.New("zero denominator")

	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrModuloByZero is returned by Mod when the divisor is zero.
	ErrModuloByZero = errors.New("modulo by zero")
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// Fraction is an exact rational number num/den.
// The zero value represents 0.
type Fraction struct {
	num *big.Int
	den *big.Int
}

// Zero and One are convenience values.
var (
	Zero = Fraction{}
	One  = FromInt64(1)
)

// New returns the fraction num/den in canonical form.
func New(num, den *big.Int) (Fraction, error) {
	if den.Sign() == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	return reduce(new(big.Int).Set(num), new(big.Int).Set(den)), nil
}

// FromInt64 returns the integer n as a fraction.
func FromInt64(n int64) Fraction {
	return Fraction{num: big.NewInt(n), den: bigOne}
}

// FromInt returns the integer n as a fraction.
func FromInt[T constraints.Integer](n T) Fraction {
	if n < 0 {
		return FromInt64(int64(n))
	}
	return Fraction{num: new(big.Int).SetUint64(uint64(n)), den: bigOne}
}

// FromBig returns the integer n as a fraction.
func FromBig(n *big.Int) Fraction {
	return Fraction{num: new(big.Int).Set(n), den: bigOne}
}

// FromRatio returns num/den in canonical form.
func FromRatio(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	if fits(num) && fits(den) {
		return reduce64(num, den), nil
	}
	return reduce(big.NewInt(num), big.NewInt(den)), nil
}

func (f Fraction) n() *big.Int {
	if f.num == nil {
		return bigZero
	}
	return f.num
}

func (f Fraction) d() *big.Int {
	if f.den == nil {
		return bigOne
	}
	return f.den
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int {
	return new(big.Int).Set(f.n())
}

// Den returns a copy of the denominator.  The result is always positive.
func (f Fraction) Den() *big.Int {
	return new(big.Int).Set(f.d())
}

// Sign returns -1, 0 or +1.
func (f Fraction) Sign() int {
	return f.n().Sign()
}

// IsZero reports whether f is 0.
func (f Fraction) IsZero() bool {
	return f.n().Sign() == 0
}

// IsInt reports whether the denominator of f is 1.
func (f Fraction) IsInt() bool {
	return isOne(f.d())
}

// Int64 returns f as an int64, if f is an integer in range.
func (f Fraction) Int64() (int64, bool) {
	if !f.IsInt() || !f.n().IsInt64() {
		return 0, false
	}
	return f.n().Int64(), true
}

// Float64 returns the nearest float64 value of f.
func (f Fraction) Float64() float64 {
	x, _ := new(big.Rat).SetFrac(f.n(), f.d()).Float64()
	return x
}

// Equal reports whether f and g denote the same number.
func (f Fraction) Equal(g Fraction) bool {
	return f.n().Cmp(g.n()) == 0 && f.d().Cmp(g.d()) == 0
}

// String returns "n" for integers and "n/d" otherwise.
func (f Fraction) String() string {
	if f.IsInt() {
		return f.n().String()
	}
	return f.n().String() + "/" + f.d().String()
}

// Neg returns -f.
func (f Fraction) Neg() Fraction {
	if f.IsZero() {
		return f
	}
	return Fraction{num: new(big.Int).Neg(f.n()), den: f.d()}
}

// Abs returns |f|.
func (f Fraction) Abs() Fraction {
	if f.Sign() >= 0 {
		return f
	}
	return f.Neg()
}

// Add returns f+g.
func (f Fraction) Add(g Fraction) Fraction {
	if a, b, ok := f.small(); ok {
		if c, d, ok := g.small(); ok {
			switch {
			case b == 1 && d == 1:
				return Fraction{num: big.NewInt(a + c), den: bigOne}
			case b == d:
				return reduce64(a+c, b)
			default:
				return reduce64(a*d+c*b, b*d)
			}
		}
	}
	return f.addBig(g.n(), g.d())
}

// Sub returns f-g.
func (f Fraction) Sub(g Fraction) Fraction {
	if a, b, ok := f.small(); ok {
		if c, d, ok := g.small(); ok {
			switch {
			case b == 1 && d == 1:
				return Fraction{num: big.NewInt(a - c), den: bigOne}
			case b == d:
				return reduce64(a-c, b)
			default:
				return reduce64(a*d-c*b, b*d)
			}
		}
	}
	return f.addBig(new(big.Int).Neg(g.n()), g.d())
}

// addBig returns f + c/gd, where gd > 0.
func (f Fraction) addBig(c, gd *big.Int) Fraction {
	a, fd := f.n(), f.d()
	switch {
	case isOne(fd) && isOne(gd):
		return Fraction{num: new(big.Int).Add(a, c), den: bigOne}
	case fd.Cmp(gd) == 0:
		return reduce(new(big.Int).Add(a, c), fd)
	default:
		num := new(big.Int).Mul(a, gd)
		num.Add(num, new(big.Int).Mul(c, fd))
		return reduce(num, new(big.Int).Mul(fd, gd))
	}
}

// Mul returns f*g.
//
// Common factors are cancelled crosswise before multiplying, so the result
// is canonical without a final reduction.
func (f Fraction) Mul(g Fraction) Fraction {
	if a, b, ok := f.small(); ok {
		if c, d, ok := g.small(); ok {
			g1 := gcd64(abs64(a), d)
			g2 := gcd64(abs64(c), b)
			return Fraction{
				num: big.NewInt((a / g1) * (c / g2)),
				den: big.NewInt((b / g2) * (d / g1)),
			}
		}
	}
	return mulBig(f.n(), f.d(), g.n(), g.d())
}

// mulBig returns (a/b)*(c/d) for canonical inputs with b, d > 0.
func mulBig(a, b, c, d *big.Int) Fraction {
	g1 := new(big.Int).GCD(nil, nil, a, d)
	g2 := new(big.Int).GCD(nil, nil, c, b)
	if g1.Sign() == 0 {
		g1 = bigOne
	}
	if g2.Sign() == 0 {
		g2 = bigOne
	}
	num := new(big.Int).Quo(a, g1)
	num.Mul(num, new(big.Int).Quo(c, g2))
	den := new(big.Int).Quo(b, g2)
	den.Mul(den, new(big.Int).Quo(d, g1))
	return Fraction{num: num, den: den}
}

// Div returns f/g.
func (f Fraction) Div(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, ErrDivisionByZero
	}
	return f.Mul(g.inv()), nil
}

// inv returns 1/f for non-zero f.
func (f Fraction) inv() Fraction {
	num, den := f.d(), f.n()
	if den.Sign() < 0 {
		return Fraction{num: new(big.Int).Neg(num), den: new(big.Int).Neg(den)}
	}
	return Fraction{num: num, den: den}
}

// Mod returns f - g*floor(f/g).
// The result has the sign of g.
func (f Fraction) Mod(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, ErrModuloByZero
	}
	if a, b, ok := f.small(); ok && b == 1 {
		if c, d, ok := g.small(); ok && d == 1 {
			r := a % c
			if r != 0 && (r < 0) != (c < 0) {
				r += c
			}
			return FromInt64(r), nil
		}
	}
	q, _ := f.Div(g)
	return f.Sub(g.Mul(q.Floor())), nil
}

// Cmp compares f and g and returns -1, 0 or +1.
// The comparison uses cross-multiplication and never divides.
func (f Fraction) Cmp(g Fraction) int {
	if a, b, ok := f.small(); ok {
		if c, d, ok := g.small(); ok {
			x, y := a*d, c*b
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	fd, gd := f.d(), g.d()
	if fd.Cmp(gd) == 0 {
		return f.n().Cmp(g.n())
	}
	x := new(big.Int).Mul(f.n(), gd)
	y := new(big.Int).Mul(g.n(), fd)
	return x.Cmp(y)
}

// Less reports whether f < g.
func (f Fraction) Less(g Fraction) bool { return f.Cmp(g) < 0 }

// LessEq reports whether f <= g.
func (f Fraction) LessEq(g Fraction) bool { return f.Cmp(g) <= 0 }

// Greater reports whether f > g.
func (f Fraction) Greater(g Fraction) bool { return f.Cmp(g) > 0 }

// GreaterEq reports whether f >= g.
func (f Fraction) GreaterEq(g Fraction) bool { return f.Cmp(g) >= 0 }

// Floor rounds towards negative infinity.
func (f Fraction) Floor() Fraction {
	if f.IsInt() {
		return f
	}
	// big.Int.Div is Euclidean division, which is floor division for d > 0.
	return Fraction{num: new(big.Int).Div(f.n(), f.d()), den: bigOne}
}

// Ceil rounds towards positive infinity.
func (f Fraction) Ceil() Fraction {
	if f.IsInt() {
		return f
	}
	return f.Neg().Floor().Neg()
}

// Round rounds to the nearest integer, with halves rounded away from zero.
func (f Fraction) Round() Fraction {
	if f.IsInt() {
		return f
	}
	// floor((2|n| + d) / 2d), then restore the sign
	n := new(big.Int).Abs(f.n())
	n.Mul(n, bigTwo)
	n.Add(n, f.d())
	q := n.Div(n, new(big.Int).Mul(f.d(), bigTwo))
	if f.Sign() < 0 {
		q.Neg(q)
	}
	return Fraction{num: q, den: bigOne}
}

// small returns the numerator and denominator of f as int64 values, if
// both fit into 32 bits.  Products and sums of such values cannot
// overflow int64.
func (f Fraction) small() (int64, int64, bool) {
	n, d := f.n(), f.d()
	if !n.IsInt64() || !d.IsInt64() {
		return 0, 0, false
	}
	a, b := n.Int64(), d.Int64()
	if !fits(a) || !fits(b) {
		return 0, 0, false
	}
	return a, b, true
}

func fits(x int64) bool {
	return x > math.MinInt32 && x <= math.MaxInt32
}

// reduce brings num/den into canonical form.  The function takes ownership
// of num, but never modifies den.
func reduce(num, den *big.Int) Fraction {
	g := new(big.Int).GCD(nil, nil, num, den)
	if !isOne(g) {
		num = num.Quo(num, g)
		den = new(big.Int).Quo(den, g)
	}
	if den.Sign() < 0 {
		num = num.Neg(num)
		den = new(big.Int).Neg(den)
	}
	if isOne(den) {
		den = bigOne
	}
	return Fraction{num: num, den: den}
}

// reduce64 brings num/den into canonical form.  Both arguments must be
// smaller than 2^63 in absolute value and den must be non-zero.
func reduce64(num, den int64) Fraction {
	g := gcd64(abs64(num), abs64(den))
	num /= g
	den /= g
	if den < 0 {
		num, den = -num, -den
	}
	if den == 1 {
		return Fraction{num: big.NewInt(num), den: bigOne}
	}
	return Fraction{num: big.NewInt(num), den: big.NewInt(den)}
}

func gcd64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func isOne(x *big.Int) bool {
	return x.IsInt64() && x.Int64() == 1
}
