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

func controlWords() map[string]builtinInfo {
	return map[string]builtinInfo{
		"EXEC": {desc: "code EXEC : run a code block or vector",
			fn: func(intp *Interpreter) error {
				if err := intp.stackTopOnly("EXEC"); err != nil {
					return err
				}
				if err := intp.need("EXEC", 1); err != nil {
					return err
				}
				code := intp.Stack[len(intp.Stack)-1]
				if err := codeArg("EXEC", code); err != nil {
					return err
				}
				return intp.atomically(func() error {
					intp.commit(1)
					intp.resetModes()
					return intp.open("EXEC", code)
				})
			}},
		"TIMES": {desc: "code n TIMES : run code n times",
			fn: func(intp *Interpreter) error {
				if err := intp.stackTopOnly("TIMES"); err != nil {
					return err
				}
				if err := intp.need("TIMES", 2); err != nil {
					return err
				}
				n := len(intp.Stack)
				code := intp.Stack[n-2]
				if err := codeArg("TIMES", code); err != nil {
					return err
				}
				count, err := intArg("TIMES", intp.Stack[n-1])
				if err != nil {
					return err
				}
				if count < 0 {
					return errType("TIMES", "non-negative count", intp.Stack[n-1])
				}
				return intp.atomically(func() error {
					intp.commit(2)
					intp.resetModes()
					for range count {
						if err := intp.open("TIMES", code); err != nil {
							return err
						}
					}
					return nil
				})
			}},
		"MAP": {desc: "v code MAP : apply code to every element",
			fn: func(intp *Interpreter) error {
				return intp.apply("MAP", 1, true, func(v Value, args []Value) (Value, error) {
					items, code, err := iteration("MAP", v, args[0])
					if err != nil {
						return Value{}, err
					}
					res := make([]Value, len(items))
					err = intp.isolated(func() error {
						for i, item := range items {
							r, err := intp.each("MAP", code, item)
							if err != nil {
								return err
							}
							res[i] = r
						}
						return nil
					})
					if err != nil {
						return Value{}, err
					}
					return NewVector(res)
				})
			}},
		"FILTER": {desc: "v code FILTER : the elements for which code gives a true value",
			fn: func(intp *Interpreter) error {
				return intp.apply("FILTER", 1, true, func(v Value, args []Value) (Value, error) {
					items, code, err := iteration("FILTER", v, args[0])
					if err != nil {
						return Value{}, err
					}
					var res []Value
					err = intp.isolated(func() error {
						for _, item := range items {
							r, err := intp.each("FILTER", code, item)
							if err != nil {
								return err
							}
							if r.Truthy() {
								res = append(res, item)
							}
						}
						return nil
					})
					if err != nil {
						return Value{}, err
					}
					out, err := NewVector(res)
					if err != nil {
						return Value{}, err
					}
					return out.WithHint(v.Hint), nil
				})
			}},
		"FOLD": {desc: "v init code FOLD : combine the elements from left to right",
			fn: func(intp *Interpreter) error {
				return intp.apply("FOLD", 2, false, func(v Value, args []Value) (Value, error) {
					items, code, err := iteration("FOLD", v, args[1])
					if err != nil {
						return Value{}, err
					}
					acc := args[0]
					err = intp.isolated(func() error {
						for _, item := range items {
							var err error
							acc, err = intp.each("FOLD", code, acc, item)
							if err != nil {
								return err
							}
						}
						return nil
					})
					if err != nil {
						return Value{}, err
					}
					return acc, nil
				})
			}},
	}
}

func codeArg(word string, v Value) error {
	if v.IsCode() || v.IsVector() && !v.IsString() {
		return nil
	}
	return errType(word, "code block", v)
}

func iteration(word string, v, code Value) ([]Value, Value, error) {
	items, err := sequence(word, v)
	if err != nil {
		return nil, Value{}, err
	}
	if err := codeArg(word, code); err != nil {
		return nil, Value{}, err
	}
	return items, code, nil
}

// atomically runs fn and restores the stack if fn fails.
func (intp *Interpreter) atomically(fn func() error) error {
	saved := slices.Clone(intp.Stack)
	err := fn()
	if err != nil {
		intp.Stack = saved
	}
	return err
}

// isolated runs fn with fresh execution modes and restores the stack
// and the modes afterwards.
func (intp *Interpreter) isolated(fn func() error) error {
	saved := intp.Stack
	target, consumption := intp.target, intp.consumption
	defer func() {
		intp.Stack = saved
		intp.target, intp.consumption = target, consumption
	}()
	intp.resetModes()
	return fn()
}

// each runs code on a private stack holding args, and returns the single
// value left by the code.
func (intp *Interpreter) each(word string, code Value, args ...Value) (Value, error) {
	intp.Stack = slices.Clone(args)
	intp.resetModes()
	if err := intp.open(word, code); err != nil {
		return Value{}, err
	}
	if len(intp.Stack) != 1 {
		return Value{}, errorf(Custom, "%s: code must leave exactly one value, found %d", word, len(intp.Stack))
	}
	return intp.Stack[0], nil
}
