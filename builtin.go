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
	"math"
	"strings"

	"seehuhn.de/go/ajisai/fraction"
)

type builtinInfo struct {
	desc     string
	fn       builtin
	modifier bool
}

// makeBuiltins returns the table of builtin words.  The table is built
// by a function, since the builtins refer back to the interpreter.
func makeBuiltins() map[string]*WordDefinition {
	words := map[string]*WordDefinition{}
	for _, table := range []map[string]builtinInfo{
		arithmeticWords(),
		vectorWords(),
		controlWords(),
		dictionaryWords(),
	} {
		for name, info := range table {
			words[name] = &WordDefinition{
				Name:        name,
				Kind:        BuiltinWord,
				Description: info.desc,
				fn:          info.fn,
				modifier:    info.modifier,
			}
		}
	}
	return words
}

func arithmeticWords() map[string]builtinInfo {
	return map[string]builtinInfo{
		"+": {desc: "a b + : sum, element-wise on vectors",
			fn: func(intp *Interpreter) error {
				return intp.binary("+", arithmetic("+", add))
			}},
		"-": {desc: "a b - : difference, element-wise on vectors",
			fn: func(intp *Interpreter) error {
				return intp.binary("-", arithmetic("-", sub))
			}},
		"*": {desc: "a b * : product, element-wise on vectors",
			fn: func(intp *Interpreter) error {
				return intp.binary("*", arithmetic("*", mul))
			}},
		"/": {desc: "a b / : quotient, element-wise on vectors",
			fn: func(intp *Interpreter) error {
				return intp.binary("/", arithmetic("/", div))
			}},
		"MOD": {desc: "a b MOD : a - b*floor(a/b), element-wise on vectors",
			fn: func(intp *Interpreter) error {
				return intp.binary("MOD", arithmetic("MOD", mod))
			}},

		"=": {desc: "a b = : equality of the underlying numbers",
			fn: func(intp *Interpreter) error {
				return intp.compare("=", comparison(func(c int) bool { return c == 0 }))
			}},
		"<": {desc: "a b < : less than",
			fn: func(intp *Interpreter) error {
				return intp.compare("<", comparison(func(c int) bool { return c < 0 }))
			}},
		"<=": {desc: "a b <= : less than or equal",
			fn: func(intp *Interpreter) error {
				return intp.compare("<=", comparison(func(c int) bool { return c <= 0 }))
			}},
		">": {desc: "a b > : greater than",
			fn: func(intp *Interpreter) error {
				return intp.compare(">", comparison(func(c int) bool { return c > 0 }))
			}},
		">=": {desc: "a b >= : greater than or equal",
			fn: func(intp *Interpreter) error {
				return intp.compare(">=", comparison(func(c int) bool { return c >= 0 }))
			}},

		"AND": {desc: "a b AND : three-valued conjunction",
			fn: func(intp *Interpreter) error {
				return intp.logical("AND", and)
			}},
		"OR": {desc: "a b OR : three-valued disjunction",
			fn: func(intp *Interpreter) error {
				return intp.logical("OR", or)
			}},
		"NOT": {desc: "a NOT : negation, NIL stays NIL",
			fn: func(intp *Interpreter) error {
				return intp.unary("NOT", not)
			}},

		"FLOOR": {desc: "a FLOOR : round toward negative infinity",
			fn: func(intp *Interpreter) error {
				return intp.unary("FLOOR", rounding(fraction.Fraction.Floor))
			}},
		"CEIL": {desc: "a CEIL : round toward positive infinity",
			fn: func(intp *Interpreter) error {
				return intp.unary("CEIL", rounding(fraction.Fraction.Ceil))
			}},
		"ROUND": {desc: "a ROUND : round half away from zero",
			fn: func(intp *Interpreter) error {
				return intp.unary("ROUND", rounding(fraction.Fraction.Round))
			}},

		"STR": {desc: "a STR : the display form of a as a string",
			fn: func(intp *Interpreter) error {
				return intp.apply("STR", 0, false, func(v Value, _ []Value) (Value, error) {
					if v.IsString() {
						return v, nil
					}
					return FromString(v.String()), nil
				})
			}},
		"NUM": {desc: "s NUM : parse a string as a number, NIL on failure",
			fn: func(intp *Interpreter) error {
				return intp.apply("NUM", 0, false, func(v Value, _ []Value) (Value, error) {
					s, ok := v.AsString()
					if !ok || !v.IsString() {
						return Value{}, errType("NUM", "string", v)
					}
					f, err := fraction.Parse(strings.TrimSpace(s))
					if err != nil {
						return NilValue(), nil
					}
					return FromFraction(f), nil
				})
			}},
		"BOOL": {desc: "a BOOL : convert to TRUE or FALSE",
			fn: func(intp *Interpreter) error {
				return intp.apply("BOOL", 0, true, func(v Value, _ []Value) (Value, error) {
					if s, ok := v.AsString(); ok && v.IsString() {
						switch strings.ToUpper(strings.TrimSpace(s)) {
						case "TRUE":
							return FromBool(true), nil
						case "FALSE":
							return FromBool(false), nil
						}
						return NilValue(), nil
					}
					return mapLeaves(v, func(x Value) (Value, error) {
						if x.IsNil() {
							return x, nil
						}
						b, _ := truth(x)
						return FromBool(b), nil
					})
				})
			}},
		"CHARS": {desc: "s CHARS : split a string into one-character strings",
			fn: func(intp *Interpreter) error {
				return intp.apply("CHARS", 0, false, func(v Value, _ []Value) (Value, error) {
					s, ok := v.AsString()
					if !ok || !v.IsString() {
						return Value{}, errType("CHARS", "string", v)
					}
					var items []Value
					for _, r := range s {
						items = append(items, FromString(string(r)))
					}
					return NewVector(items)
				})
			}},
		"JOIN": {desc: "v JOIN : concatenate a vector of strings",
			fn: func(intp *Interpreter) error {
				return intp.apply("JOIN", 0, false, func(v Value, _ []Value) (Value, error) {
					items, err := sequence("JOIN", v)
					if err != nil {
						return Value{}, err
					}
					var b strings.Builder
					for _, item := range items {
						s, ok := item.AsString()
						if !ok {
							return Value{}, errType("JOIN", "string", item)
						}
						b.WriteString(s)
					}
					return FromString(b.String()), nil
				})
			}},

		"PRINT": {desc: "a PRINT : write a to the output",
			fn: func(intp *Interpreter) error {
				if intp.target == Stack {
					intp.println(formatStack(intp.Stack))
					if intp.consumption == Consume {
						intp.Stack = intp.Stack[:0]
					}
					return nil
				}
				if err := intp.need("PRINT", 1); err != nil {
					return err
				}
				intp.println(intp.Stack[len(intp.Stack)-1].String())
				intp.commit(1)
				return nil
			}},
		"NIL": {desc: "NIL : push the empty value",
			fn: func(intp *Interpreter) error {
				intp.push(NilValue())
				return nil
			}},

		".": {desc: "operate on the top of the stack", modifier: true,
			fn: func(intp *Interpreter) error {
				intp.target = StackTop
				return nil
			}},
		"..": {desc: "operate on the whole stack", modifier: true,
			fn: func(intp *Interpreter) error {
				intp.target = Stack
				return nil
			}},
		",": {desc: "remove operands from the stack", modifier: true,
			fn: func(intp *Interpreter) error {
				intp.consumption = Consume
				return nil
			}},
		",,": {desc: "keep operands on the stack", modifier: true,
			fn: func(intp *Interpreter) error {
				intp.consumption = Keep
				return nil
			}},
		"!": {desc: "allow the next DEF or DEL to break dependencies", modifier: true,
			fn: func(intp *Interpreter) error {
				intp.force = true
				return nil
			}},
	}
}

// sequence returns the elements of a vector.  Nil is the empty sequence.
func sequence(word string, v Value) ([]Value, error) {
	switch d := v.Data.(type) {
	case nil, Nil:
		return nil, nil
	case Vector:
		return d, nil
	}
	return nil, errType(word, "vector", v)
}

// intArg converts an integer scalar into an int.  Counts and dimensions
// are limited to the 32-bit range.
func intArg(word string, v Value) (int, error) {
	s, ok := v.Data.(Scalar)
	if !ok || !s.IsInt() {
		return 0, errType(word, "integer", v)
	}
	n, ok := s.Int64()
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errType(word, "32-bit integer", v)
	}
	return int(n), nil
}

// intIndex converts an integer scalar into an index for a sequence of the
// given length.  Indices outside the 32-bit range are reported as out of
// bounds.
func intIndex(word string, v Value, length int) (int, error) {
	s, ok := v.Data.(Scalar)
	if !ok || !s.IsInt() {
		return 0, errType(word, "integer", v)
	}
	n, ok := s.Int64()
	if !ok {
		n = math.MaxInt64
		if s.Sign() < 0 {
			n = math.MinInt64
		}
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errIndex(word, int(n), length)
	}
	return int(n), nil
}

// index resolves the integer v as a position in a sequence of length n.
func index(word string, v Value, n int, end bool) (int, error) {
	i, err := intIndex(word, v, n)
	if err != nil {
		return 0, err
	}
	return position(word, i, n, end)
}

// position resolves index i for a sequence of length n.  Negative
// indices count from the end.  If end is set, n itself is a valid
// position.
func position(word string, i, n int, end bool) (int, error) {
	limit := n
	if end {
		limit++
	}
	j := i
	if j < 0 {
		j += limit
	}
	if j < 0 || j >= limit {
		return 0, errIndex(word, i, n)
	}
	return j, nil
}
