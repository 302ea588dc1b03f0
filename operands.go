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
)

// The functions in this file select operands according to the current
// target and consumption modes.  They compute the result before they
// modify the stack, so that a failing operation leaves the stack unchanged.

// need checks that the stack holds at least n values.
func (intp *Interpreter) need(word string, n int) error {
	if len(intp.Stack) < n {
		return errUnderflow(word, n, len(intp.Stack))
	}
	return nil
}

// stackTopOnly fails if the interpreter is in Stack mode.
func (intp *Interpreter) stackTopOnly(word string) error {
	if intp.target == Stack {
		return errMode(word, Stack)
	}
	return nil
}

// stackOperand returns the values in stack as a single vector.
// The depth limit is not checked, since the result never reaches the
// stack in this form.
func stackOperand(stack []Value) Value {
	if len(stack) == 0 {
		return Value{Data: Nil{}}
	}
	return Value{Data: Vector(slices.Clone(stack))}
}

// apply runs an operation with nargs arguments on top of the stack and a
// target value below them.  In StackTop mode the target is the value
// below the arguments, in Stack mode it is the vector of all values below
// the arguments.  If spread is set and the interpreter is in Stack mode,
// the elements of the result replace the stack, otherwise the result is
// pushed as a single value and must respect MaxDimensions.
func (intp *Interpreter) apply(word string, nargs int, spread bool, fn func(target Value, args []Value) (Value, error)) error {
	n := len(intp.Stack)
	if intp.target == Stack {
		if err := intp.need(word, nargs); err != nil {
			return err
		}
		args := slices.Clone(intp.Stack[n-nargs:])
		target := stackOperand(intp.Stack[:n-nargs])
		res, err := fn(target, args)
		if err != nil {
			return err
		}
		if !spread {
			if d := res.Depth(); d > MaxDimensions {
				return errDepth(d)
			}
		}
		if intp.consumption == Consume {
			intp.Stack = intp.Stack[:0]
		}
		if spread {
			intp.Stack = append(intp.Stack, res.items()...)
		} else {
			intp.push(res)
		}
		return nil
	}

	if err := intp.need(word, nargs+1); err != nil {
		return err
	}
	target := intp.Stack[n-nargs-1]
	args := slices.Clone(intp.Stack[n-nargs:])
	res, err := fn(target, args)
	if err != nil {
		return err
	}
	intp.commit(nargs+1, res)
	return nil
}

// commit removes n operands, unless the interpreter is in Keep mode, and
// pushes the results.
func (intp *Interpreter) commit(n int, results ...Value) {
	if intp.consumption == Consume {
		intp.Stack = intp.Stack[:len(intp.Stack)-n]
	}
	intp.Stack = append(intp.Stack, results...)
}

// binary applies a broadcasting binary operation.  In Stack mode the
// operation is folded from left to right over the whole stack.
func (intp *Interpreter) binary(word string, fn leafFunc) error {
	n := len(intp.Stack)
	if intp.target == Stack {
		if err := intp.need(word, 2); err != nil {
			return err
		}
		acc := intp.Stack[0]
		for _, v := range intp.Stack[1:] {
			var err error
			acc, err = zipWith(word, acc, v, fn)
			if err != nil {
				return err
			}
		}
		intp.commit(n, acc)
		return nil
	}

	if err := intp.need(word, 2); err != nil {
		return err
	}
	res, err := zipWith(word, intp.Stack[n-2], intp.Stack[n-1], fn)
	if err != nil {
		return err
	}
	intp.commit(2, res)
	return nil
}

// compare applies a comparison, which is only defined on the stack top.
func (intp *Interpreter) compare(word string, fn leafFunc) error {
	if err := intp.stackTopOnly(word); err != nil {
		return err
	}
	return intp.logical(word, fn)
}

// logical applies a comparison or logic operation.  Unlike arithmetic,
// these operations reject code blocks instead of passing them through.
func (intp *Interpreter) logical(word string, fn leafFunc) error {
	operands := intp.Stack
	if intp.target == StackTop && len(operands) > 2 {
		operands = operands[len(operands)-2:]
	}
	for _, v := range operands {
		if code, found := findCode(v); found {
			return errType(word, "number or vector", code)
		}
	}
	return intp.binary(word, fn)
}

// findCode returns the first code block contained in v.
func findCode(v Value) (Value, bool) {
	switch d := v.Data.(type) {
	case CodeBlock:
		return v, true
	case Vector:
		for _, item := range d {
			if code, found := findCode(item); found {
				return code, true
			}
		}
	}
	return Value{}, false
}

// unary applies a leaf-wise unary operation.
func (intp *Interpreter) unary(word string, fn func(Value) (Value, error)) error {
	return intp.apply(word, 0, true, func(target Value, _ []Value) (Value, error) {
		return mapLeaves(target, fn)
	})
}

// changed fails with a NoChange error if the check is enabled and the
// result of a structural operation equals its input.
func (intp *Interpreter) changed(word string, before, after Value) error {
	if intp.noChangeCheck && before.Equal(after) {
		return errNoChange(word)
	}
	return nil
}
