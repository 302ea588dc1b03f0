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
	"slices"

	"seehuhn.de/go/ajisai/fraction"
)

// maxRange limits the length of vectors created by RANGE and FILL.
const maxRange = 1 << 20

func vectorWords() map[string]builtinInfo {
	return map[string]builtinInfo{
		"GET": {desc: "v i GET : the element at index i, negative indices count from the end",
			fn: func(intp *Interpreter) error {
				return intp.apply("GET", 1, false, func(v Value, args []Value) (Value, error) {
					items, err := sequence("GET", v)
					if err != nil {
						return Value{}, err
					}
					j, err := index("GET", args[0], len(items), false)
					if err != nil {
						return Value{}, err
					}
					return items[j], nil
				})
			}},
		"INSERT": {desc: "v i x INSERT : insert x before index i",
			fn: func(intp *Interpreter) error {
				return intp.apply("INSERT", 2, true, func(v Value, args []Value) (Value, error) {
					items, err := sequence("INSERT", v)
					if err != nil {
						return Value{}, err
					}
					j, err := index("INSERT", args[0], len(items), true)
					if err != nil {
						return Value{}, err
					}
					res, err := NewVector(slices.Insert(slices.Clone(items), j, args[1]))
					if err != nil {
						return Value{}, err
					}
					return res.WithHint(v.Hint), nil
				})
			}},
		"REPLACE": {desc: "v i x REPLACE : replace the element at index i by x",
			fn: func(intp *Interpreter) error {
				return intp.apply("REPLACE", 2, true, func(v Value, args []Value) (Value, error) {
					items, err := sequence("REPLACE", v)
					if err != nil {
						return Value{}, err
					}
					j, err := index("REPLACE", args[0], len(items), false)
					if err != nil {
						return Value{}, err
					}
					items = slices.Clone(items)
					items[j] = args[1]
					res, err := NewVector(items)
					if err != nil {
						return Value{}, err
					}
					return res.WithHint(v.Hint), nil
				})
			}},
		"REMOVE": {desc: "v i REMOVE : remove the element at index i",
			fn: func(intp *Interpreter) error {
				return intp.apply("REMOVE", 1, true, func(v Value, args []Value) (Value, error) {
					items, err := sequence("REMOVE", v)
					if err != nil {
						return Value{}, err
					}
					j, err := index("REMOVE", args[0], len(items), false)
					if err != nil {
						return Value{}, err
					}
					res, err := NewVector(slices.Delete(slices.Clone(items), j, j+1))
					if err != nil {
						return Value{}, err
					}
					return res.WithHint(v.Hint), nil
				})
			}},
		"LENGTH": {desc: "v LENGTH : the number of elements",
			fn: func(intp *Interpreter) error {
				return intp.apply("LENGTH", 0, false, func(v Value, _ []Value) (Value, error) {
					items, err := sequence("LENGTH", v)
					if err != nil {
						return Value{}, err
					}
					return Int(len(items)), nil
				})
			}},
		"TAKE": {desc: "v n TAKE : the first n elements, or the last -n elements",
			fn: func(intp *Interpreter) error {
				return intp.apply("TAKE", 1, true, func(v Value, args []Value) (Value, error) {
					items, err := sequence("TAKE", v)
					if err != nil {
						return Value{}, err
					}
					n, err := intIndex("TAKE", args[0], len(items))
					if err != nil {
						return Value{}, err
					}
					switch {
					case n > len(items) || -n > len(items):
						return Value{}, errIndex("TAKE", n, len(items))
					case n >= 0:
						items = items[:n]
					default:
						items = items[len(items)+n:]
					}
					res, err := NewVector(slices.Clone(items))
					if err != nil {
						return Value{}, err
					}
					return res.WithHint(v.Hint), nil
				})
			}},
		"CONCAT": {desc: "a b CONCAT : join two vectors",
			fn: builtinConcat},
		"REVERSE": {desc: "v REVERSE : reverse the order of the elements",
			fn: func(intp *Interpreter) error {
				return intp.apply("REVERSE", 0, true, func(v Value, _ []Value) (Value, error) {
					items, err := sequence("REVERSE", v)
					if err != nil {
						return Value{}, err
					}
					items = slices.Clone(items)
					slices.Reverse(items)
					res := Value{Data: Nil{}, Hint: v.Hint}
					if len(items) > 0 {
						res = Value{Data: Vector(items), Hint: v.Hint}
					}
					if err := intp.changed("REVERSE", v, res); err != nil {
						return Value{}, err
					}
					return res, nil
				})
			}},
		"RANGE": {desc: "a b RANGE : the numbers from a to b in steps of 1",
			fn: func(intp *Interpreter) error {
				if err := intp.stackTopOnly("RANGE"); err != nil {
					return err
				}
				return intp.apply("RANGE", 1, false, func(a Value, args []Value) (Value, error) {
					from, ok1 := a.Data.(Scalar)
					to, ok2 := args[0].Data.(Scalar)
					if !ok1 {
						return Value{}, errType("RANGE", "number", a)
					} else if !ok2 {
						return Value{}, errType("RANGE", "number", args[0])
					}
					step := fraction.One
					if to.Less(from.Fraction) {
						step = step.Neg()
					}
					count, ok := to.Sub(from.Fraction).Abs().Floor().Int64()
					if !ok || count >= maxRange {
						return Value{}, errorf(Custom, "RANGE: more than %d elements", maxRange)
					}
					items := make([]Value, count+1)
					x := from.Fraction
					for i := range items {
						items[i] = FromFraction(x)
						x = x.Add(step)
					}
					return NewVector(items)
				})
			}},
		"SHAPE": {desc: "v SHAPE : the dimensions of v",
			fn: func(intp *Interpreter) error {
				return intp.apply("SHAPE", 0, false, func(v Value, _ []Value) (Value, error) {
					shape := v.Shape()
					items := make([]Value, len(shape))
					for i, n := range shape {
						items[i] = Int(n)
					}
					return NewVector(items)
				})
			}},
		"RANK": {desc: "v RANK : the number of dimensions of v",
			fn: func(intp *Interpreter) error {
				return intp.apply("RANK", 0, false, func(v Value, _ []Value) (Value, error) {
					return Int(len(v.Shape())), nil
				})
			}},
		"RESHAPE": {desc: "v s RESHAPE : arrange the elements of v in shape s",
			fn: func(intp *Interpreter) error {
				return intp.apply("RESHAPE", 1, false, func(v Value, args []Value) (Value, error) {
					shape, err := shapeArg("RESHAPE", args[0])
					if err != nil {
						return Value{}, err
					}
					elems := leaves(v)
					if total := product(shape); total != len(elems) {
						return Value{}, errLength("RESHAPE", len(elems), total)
					}
					res, _ := build(shape, elems)
					return res, nil
				})
			}},
		"TRANSPOSE": {desc: "m TRANSPOSE : exchange rows and columns of a matrix",
			fn: func(intp *Interpreter) error {
				return intp.apply("TRANSPOSE", 0, true, func(v Value, _ []Value) (Value, error) {
					shape := v.Shape()
					if len(shape) < 2 {
						return Value{}, errType("TRANSPOSE", "matrix", v)
					}
					rows := v.Data.(Vector)
					cols := make(Vector, shape[1])
					for j := range cols {
						col := make(Vector, len(rows))
						for i, row := range rows {
							col[i] = row.Data.(Vector)[j]
						}
						cols[j] = Value{Data: col}
					}
					return Value{Data: cols}, nil
				})
			}},
		"FILL": {desc: "s x FILL : a vector of shape s filled with x",
			fn: func(intp *Interpreter) error {
				if err := intp.stackTopOnly("FILL"); err != nil {
					return err
				}
				return intp.apply("FILL", 1, false, func(s Value, args []Value) (Value, error) {
					shape, err := shapeArg("FILL", s)
					if err != nil {
						return Value{}, err
					}
					if d := len(shape) + args[0].Depth(); d > MaxDimensions {
						return Value{}, errDepth(d)
					}
					elems := make([]Value, product(shape))
					for i := range elems {
						elems[i] = args[0]
					}
					res, _ := build(shape, elems)
					return res, nil
				})
			}},
		"FLATTEN": {desc: "v FLATTEN : the leaves of v as a flat vector",
			fn: func(intp *Interpreter) error {
				return intp.apply("FLATTEN", 0, true, func(v Value, _ []Value) (Value, error) {
					res, err := NewVector(leaves(v))
					if err != nil {
						return Value{}, err
					}
					return res.WithHint(v.Hint), nil
				})
			}},
	}
}

func builtinConcat(intp *Interpreter) error {
	if intp.target == Stack {
		var items []Value
		for _, v := range intp.Stack {
			items = append(items, v.items()...)
		}
		res, err := NewVector(items)
		if err != nil {
			return err
		}
		intp.commit(len(intp.Stack), res)
		return nil
	}

	if err := intp.need("CONCAT", 2); err != nil {
		return err
	}
	n := len(intp.Stack)
	a, b := intp.Stack[n-2], intp.Stack[n-1]
	items := slices.Concat(a.items(), b.items())
	res, err := NewVector(items)
	if err != nil {
		return err
	}
	if a.IsString() && b.IsString() {
		res = res.WithHint(HintString)
	}
	intp.commit(2, res)
	return nil
}

// leaves returns the scalars and nils of v in depth-first order.
func leaves(v Value) []Value {
	switch d := v.Data.(type) {
	case Vector:
		var res []Value
		for _, item := range d {
			res = append(res, leaves(item)...)
		}
		return res
	case nil, Nil:
		return nil
	}
	return []Value{v}
}

// shapeArg converts a vector of positive integers into a shape.
func shapeArg(word string, v Value) ([]int, error) {
	var dims []Value
	if v.IsScalar() {
		dims = []Value{v}
	} else {
		var err error
		dims, err = sequence(word, v)
		if err != nil {
			return nil, err
		}
	}
	if len(dims) == 0 {
		return nil, errType(word, "shape", v)
	}
	if len(dims) > MaxDimensions {
		return nil, errDepth(len(dims))
	}
	shape := make([]int, len(dims))
	total := 1
	for i, d := range dims {
		n, err := intArg(word, d)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, errType(word, "positive dimension", d)
		}
		total *= n
		if total > maxRange {
			return nil, errorf(Custom, "%s: more than %d elements", word, maxRange)
		}
		shape[i] = n
	}
	return shape, nil
}

func product(shape []int) int {
	p := 1
	for _, n := range shape {
		p *= n
	}
	return p
}

// build arranges elems into nested vectors of the given shape.  It
// returns the unused elements.
func build(shape []int, elems []Value) (Value, []Value) {
	if len(shape) == 0 {
		return elems[0], elems[1:]
	}
	res := make(Vector, shape[0])
	for i := range res {
		res[i], elems = build(shape[1:], elems)
	}
	return Value{Data: res}, elems
}
