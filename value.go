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

// Package ajisai implements the core of a concatenative language in which
// every value is an exact fraction or a tree of exact fractions.
//
// Strings, booleans and dates are display hints over the same numeric
// data.  Programs are token streams (see Scan) executed by an Interpreter
// against a stack of Values.
package ajisai

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
	"seehuhn.de/go/ajisai/fraction"
)

// MaxDimensions is the maximal nesting depth of vectors.
const MaxDimensions = 9

// Data is the payload of a Value: one of Nil, Scalar, Vector or CodeBlock.
type Data interface {
	isData()
}

// Nil represents an empty or unknown value.
type Nil struct{}

// Scalar is a single fraction.
type Scalar struct {
	fraction.Fraction
}

// Vector is an ordered, possibly nested sequence of values.
// Vectors stored in a Value are never empty.
type Vector []Value

// CodeBlock is an unevaluated program fragment.
type CodeBlock []Token

func (Nil) isData()       {}
func (Scalar) isData()    {}
func (Vector) isData()    {}
func (CodeBlock) isData() {}

// Value is the unit of data on the stack.  Values are treated as
// immutable: operations build new trees and never modify their operands.
type Value struct {
	Data Data
	Hint DisplayHint
}

// NilValue returns the Nil value.
func NilValue() Value {
	return Value{Data: Nil{}, Hint: HintNil}
}

// Int returns an integer value.
func Int[T constraints.Integer](n T) Value {
	return Value{Data: Scalar{fraction.FromInt(n)}, Hint: HintNumber}
}

// FromFraction returns a numeric value.
func FromFraction(f fraction.Fraction) Value {
	return Value{Data: Scalar{f}, Hint: HintNumber}
}

// FromBool returns TRUE or FALSE.
func FromBool(b bool) Value {
	f := fraction.Zero
	if b {
		f = fraction.One
	}
	return Value{Data: Scalar{f}, Hint: HintBoolean}
}

// FromString returns a vector of code points with the String hint.
// The empty string is represented by Nil with the String hint.
func FromString(s string) Value {
	if s == "" {
		return Value{Data: Nil{}, Hint: HintString}
	}
	var items Vector
	for _, r := range s {
		items = append(items, Value{Data: Scalar{fraction.FromInt(r)}})
	}
	return Value{Data: items, Hint: HintString}
}

// NewVector returns a vector of the given items.  An empty vector is
// normalized to Nil.  The function fails if the result would be nested
// deeper than MaxDimensions.
func NewVector(items []Value) (Value, error) {
	if len(items) == 0 {
		return Value{Data: Nil{}}, nil
	}
	depth := 0
	for _, item := range items {
		depth = max(depth, item.Depth())
	}
	if depth+1 > MaxDimensions {
		return Value{}, errDepth(depth + 1)
	}
	return Value{Data: Vector(items)}, nil
}

// NewCodeBlock returns a code block holding a copy of tokens.
func NewCodeBlock(tokens []Token) Value {
	return Value{Data: CodeBlock(slices.Clone(tokens))}
}

// IsNil reports whether v is Nil.
func (v Value) IsNil() bool {
	switch v.Data.(type) {
	case nil, Nil:
		return true
	}
	return false
}

// IsScalar reports whether v is a single fraction.
func (v Value) IsScalar() bool {
	_, ok := v.Data.(Scalar)
	return ok
}

// IsVector reports whether v is a vector.
func (v Value) IsVector() bool {
	_, ok := v.Data.(Vector)
	return ok
}

// IsCode reports whether v is a code block.
func (v Value) IsCode() bool {
	_, ok := v.Data.(CodeBlock)
	return ok
}

// Depth returns the number of nested vector levels in v.
func (v Value) Depth() int {
	items, ok := v.Data.(Vector)
	if !ok {
		return 0
	}
	depth := 0
	for _, item := range items {
		depth = max(depth, item.Depth())
	}
	return depth + 1
}

// Shape returns the dimensions of v.  A vector has shape [len, child...]
// if all children share the same shape, and [len] otherwise.  Scalars,
// Nil and code blocks have an empty shape.
func (v Value) Shape() []int {
	items, ok := v.Data.(Vector)
	if !ok {
		return nil
	}
	child := items[0].Shape()
	for _, item := range items[1:] {
		if !slices.Equal(child, item.Shape()) {
			return []int{len(items)}
		}
	}
	return append([]int{len(items)}, child...)
}

// Flatten returns the fractions of v in depth-first order.
func (v Value) Flatten() []fraction.Fraction {
	var res []fraction.Fraction
	var walk func(Value)
	walk = func(v Value) {
		switch d := v.Data.(type) {
		case Scalar:
			res = append(res, d.Fraction)
		case Vector:
			for _, item := range d {
				walk(item)
			}
		}
	}
	walk(v)
	return res
}

// Equal reports whether v and w hold the same data.  Display hints are
// ignored.
func (v Value) Equal(w Value) bool {
	switch d := v.Data.(type) {
	case nil, Nil:
		return w.IsNil()
	case Scalar:
		e, ok := w.Data.(Scalar)
		return ok && d.Fraction.Equal(e.Fraction)
	case Vector:
		e, ok := w.Data.(Vector)
		return ok && slices.EqualFunc(d, e, Value.Equal)
	case CodeBlock:
		e, ok := w.Data.(CodeBlock)
		return ok && slices.Equal(d, e)
	}
	return false
}

// WithHint returns v re-tagged with hint h.  The data is not changed.
// If h does not fit the shape of v, v is returned unchanged.
func (v Value) WithHint(h DisplayHint) Value {
	if !h.fits(v) {
		return v
	}
	v.Hint = h
	return v
}

// Truthy reports whether v counts as true in a guard condition.
// Nil and FALSE are false; a one-element vector has the truth value of its
// element; everything else is true.
func (v Value) Truthy() bool {
	switch d := v.Data.(type) {
	case nil, Nil:
		return false
	case Scalar:
		return v.Hint != HintBoolean || !d.IsZero()
	case Vector:
		if len(d) == 1 {
			return d[0].Truthy()
		}
	}
	return true
}

// AsString returns the text of a string value.  The second return value is
// false if v does not consist of code points.
func (v Value) AsString() (string, bool) {
	switch d := v.Data.(type) {
	case nil, Nil:
		return "", v.Hint == HintString
	case Vector:
		runes := make([]rune, 0, len(d))
		for _, item := range d {
			r, ok := item.codePoint()
			if !ok {
				return "", false
			}
			runes = append(runes, r)
		}
		return string(runes), true
	}
	return "", false
}

// IsString reports whether v carries the String hint.
func (v Value) IsString() bool {
	return v.Hint == HintString
}

// codePoint returns the rune for an integer scalar in the Unicode range.
func (v Value) codePoint() (rune, bool) {
	s, ok := v.Data.(Scalar)
	if !ok {
		return 0, false
	}
	n, ok := s.Int64()
	if !ok || n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return 0, false
	}
	return rune(n), true
}

// items returns the elements of v seen as a sequence: the children of a
// vector, nothing for Nil, and v itself for anything else.
func (v Value) items() []Value {
	switch d := v.Data.(type) {
	case nil, Nil:
		return nil
	case Vector:
		return d
	}
	return []Value{v}
}

func (v Value) kindName() string {
	switch v.Data.(type) {
	case nil, Nil:
		return "nil"
	case Scalar:
		if v.Hint == HintBoolean {
			return "boolean"
		}
		return "number"
	case Vector:
		if v.Hint == HintString {
			return "string"
		}
		return "vector"
	case CodeBlock:
		return "code block"
	}
	return "unknown"
}

// tokens returns the literal tokens which reproduce v when executed.
func (v Value) tokens() []Token {
	switch d := v.Data.(type) {
	case nil, Nil:
		if v.Hint == HintString {
			return []Token{Str("")}
		}
		return []Token{Sym("NIL")}
	case Scalar:
		if v.Hint == HintBoolean {
			return []Token{Bool(!d.IsZero())}
		}
		return []Token{Num(d.String())}
	case Vector:
		if s, ok := v.AsString(); ok && v.Hint == HintString {
			return []Token{Str(s)}
		}
		res := []Token{Punct(VectorStart)}
		for _, item := range d {
			res = append(res, item.tokens()...)
		}
		return append(res, Punct(VectorEnd))
	case CodeBlock:
		res := []Token{Punct(CodeBlockStart)}
		res = append(res, d...)
		return append(res, Punct(CodeBlockEnd))
	}
	return nil
}
