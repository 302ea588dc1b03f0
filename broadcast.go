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

package ajisai

import (
	"errors"

	"seehuhn.de/go/ajisai/fraction"
)

// leafFunc combines two leaves.  A leaf is a Scalar or Nil.
type leafFunc func(x, y Value) (Value, error)

// zipWith combines a and b element-wise.  Scalars and one-element vectors
// are broadcast across the other operand; vectors of other lengths must
// agree.  Code blocks are passed through unchanged; comparisons and logic
// reject them before they get here.
func zipWith(word string, a, b Value, fn leafFunc) (Value, error) {
	if a.IsCode() {
		return a, nil
	}
	if b.IsCode() {
		return b, nil
	}

	va, aVec := a.Data.(Vector)
	vb, bVec := b.Data.(Vector)
	switch {
	case aVec && bVec:
		switch {
		case len(va) == len(vb):
			res := make(Vector, len(va))
			for i := range va {
				r, err := zipWith(word, va[i], vb[i], fn)
				if err != nil {
					return Value{}, err
				}
				res[i] = r
			}
			return Value{Data: res}, nil
		case len(va) == 1:
			return zipWith(word, va[0], b, fn)
		case len(vb) == 1:
			return zipWith(word, a, vb[0], fn)
		default:
			return Value{}, errLength(word, len(va), len(vb))
		}
	case aVec:
		return mapVector(va, func(x Value) (Value, error) {
			return zipWith(word, x, b, fn)
		})
	case bVec:
		return mapVector(vb, func(y Value) (Value, error) {
			return zipWith(word, a, y, fn)
		})
	}
	return fn(a, b)
}

// mapLeaves applies fn to every leaf of v, keeping the shape.
func mapLeaves(v Value, fn func(Value) (Value, error)) (Value, error) {
	switch d := v.Data.(type) {
	case Vector:
		return mapVector(d, func(x Value) (Value, error) {
			return mapLeaves(x, fn)
		})
	case CodeBlock:
		return v, nil
	}
	return fn(v)
}

func mapVector(items Vector, fn func(Value) (Value, error)) (Value, error) {
	res := make(Vector, len(items))
	for i, item := range items {
		r, err := fn(item)
		if err != nil {
			return Value{}, err
		}
		res[i] = r
	}
	return Value{Data: res}, nil
}

// arithmetic returns the leaf function for a binary arithmetic operator.
// Nil operands give Nil.
func arithmetic(word string, op func(f, g fraction.Fraction) (fraction.Fraction, error)) leafFunc {
	return func(x, y Value) (Value, error) {
		if x.IsNil() || y.IsNil() {
			return NilValue(), nil
		}
		f, g := x.Data.(Scalar), y.Data.(Scalar)
		r, err := op(f.Fraction, g.Fraction)
		if err != nil {
			return Value{}, errArith(word, err)
		}
		hint := HintAuto
		if x.Hint == HintNumber && y.Hint == HintNumber {
			hint = HintNumber
		}
		return Value{Data: Scalar{r}, Hint: hint}, nil
	}
}

func errArith(word string, err error) *Error {
	kind := Custom
	if errors.Is(err, fraction.ErrDivisionByZero) || errors.Is(err, fraction.ErrModuloByZero) {
		kind = DivisionByZero
	}
	e := errorf(kind, "%s", word)
	if kind == Custom {
		e.Msg = word + ": " + err.Error()
	}
	e.cause = err
	return e
}

func add(f, g fraction.Fraction) (fraction.Fraction, error) { return f.Add(g), nil }
func sub(f, g fraction.Fraction) (fraction.Fraction, error) { return f.Sub(g), nil }
func mul(f, g fraction.Fraction) (fraction.Fraction, error) { return f.Mul(g), nil }
func div(f, g fraction.Fraction) (fraction.Fraction, error) { return f.Div(g) }
func mod(f, g fraction.Fraction) (fraction.Fraction, error) { return f.Mod(g) }

// comparison returns the leaf function for a comparison operator.
func comparison(test func(c int) bool) leafFunc {
	return func(x, y Value) (Value, error) {
		if x.IsNil() || y.IsNil() {
			return NilValue(), nil
		}
		f, g := x.Data.(Scalar), y.Data.(Scalar)
		return FromBool(test(f.Cmp(g.Fraction))), nil
	}
}

// truth returns the truth value of a leaf, and false if it is unknown.
func truth(x Value) (value, known bool) {
	s, ok := x.Data.(Scalar)
	if !ok {
		return false, false
	}
	return !s.IsZero(), true
}

// and implements three-valued conjunction: a known FALSE decides the
// result even if the other operand is unknown.
func and(x, y Value) (Value, error) {
	a, aKnown := truth(x)
	b, bKnown := truth(y)
	switch {
	case aKnown && !a, bKnown && !b:
		return FromBool(false), nil
	case aKnown && bKnown:
		return FromBool(true), nil
	}
	return NilValue(), nil
}

// or implements three-valued disjunction.
func or(x, y Value) (Value, error) {
	a, aKnown := truth(x)
	b, bKnown := truth(y)
	switch {
	case aKnown && a, bKnown && b:
		return FromBool(true), nil
	case aKnown && bKnown:
		return FromBool(false), nil
	}
	return NilValue(), nil
}

func not(x Value) (Value, error) {
	a, known := truth(x)
	if !known {
		return NilValue(), nil
	}
	return FromBool(!a), nil
}

// rounding returns the leaf function for FLOOR, CEIL and ROUND.
func rounding(op func(fraction.Fraction) fraction.Fraction) func(Value) (Value, error) {
	return func(x Value) (Value, error) {
		s, ok := x.Data.(Scalar)
		if !ok {
			return x, nil
		}
		return Value{Data: Scalar{op(s.Fraction)}, Hint: x.Hint}, nil
	}
}
