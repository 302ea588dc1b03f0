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

package fraction

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

// ErrSyntax is returned by Parse for malformed number literals.
var ErrSyntax = errors.New("invalid number literal")

// maxExponent bounds the exponent in literals like 1e5, so that a short
// literal cannot request an arbitrarily large power of ten.
const maxExponent = 4096

var (
	integerRE  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	fractionRE = regexp.MustCompile(`^([+-]?[0-9]+)/([0-9]+)$`)
	decimalRE  = regexp.MustCompile(`^([+-]?)([0-9]*)(?:\.([0-9]*))?(?:[eE]([+-]?[0-9]+))?$`)
)

// Parse converts a number literal into a fraction.  Accepted forms are
// integers ("-12"), fractions ("3/4"), decimals ("0.25", ".5", "2.")
// and exponential notation ("1.5e-3").
func Parse(s string) (Fraction, error) {
	switch {
	case integerRE.MatchString(s):
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Fraction{}, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		return Fraction{num: n, den: bigOne}, nil

	case fractionRE.MatchString(s):
		m := fractionRE.FindStringSubmatch(s)
		num, _ := new(big.Int).SetString(m[1], 10)
		den, _ := new(big.Int).SetString(m[2], 10)
		if den.Sign() == 0 {
			return Fraction{}, fmt.Errorf("%q: %w", s, ErrZeroDenominator)
		}
		return reduce(num, den), nil
	}

	m := decimalRE.FindStringSubmatch(s)
	if m == nil || m[2] == "" && m[3] == "" {
		return Fraction{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	sign, intPart, fracPart, expPart := m[1], m[2], m[3], m[4]

	exp := 0
	if expPart != "" {
		e, err := strconv.Atoi(expPart)
		if err != nil || e > maxExponent || e < -maxExponent {
			return Fraction{}, fmt.Errorf("%w: exponent out of range in %q", ErrSyntax, s)
		}
		exp = e
	}
	exp -= len(fracPart)

	num, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Fraction{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	if sign == "-" {
		num.Neg(num)
	}
	den := big.NewInt(1)
	if exp > 0 {
		num.Mul(num, pow10(exp))
	} else if exp < 0 {
		den = pow10(-exp)
	}
	return reduce(num, den), nil
}

// MustParse is like Parse but panics on malformed input.
// It is intended for tests and for tables of constants.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
